//go:build cellsync_location

package opt

const trackTagged = true
