//go:build cellsync_location || race

package opt

// TrackLocation_ records where the earliest live borrow of a cell was taken,
// so conflict panics can point at it.
// Enabled by -tags cellsync_location, and always under the race detector.
const TrackLocation_ = true
