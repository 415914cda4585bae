//go:build !cellsync_location && !race

package opt

// TrackLocation_ is off: conflict panics carry no borrow location and the
// cell never walks the call stack.
const TrackLocation_ = false
