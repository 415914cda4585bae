package cellsync

import (
	"path"
	"runtime"
	"strconv"
	"strings"
)

const pkgPrefix = "github.com/llxisdsh/cellsync."

// callerLocation returns file:line of the first frame outside this package.
// Frames from this package's tests count as outside.
func callerLocation() string {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, pkgPrefix) ||
			strings.HasSuffix(f.File, "_test.go") {
			return path.Base(f.File) + ":" + strconv.Itoa(f.Line)
		}
		if !more {
			return ""
		}
	}
}
