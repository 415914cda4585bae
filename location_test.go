package cellsync

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/llxisdsh/cellsync/internal/opt"
	"github.com/stretchr/testify/assert"
)

func TestConflictReportsBorrowLocation(t *testing.T) {
	lock := NewCellRWLock(0)
	_, _, line, _ := runtime.Caller(0)
	w := lock.Write()

	err := recoverConflict(t, func() { lock.Read() })
	if opt.TrackLocation_ {
		want := "location_test.go:" + strconv.Itoa(line+1)
		assert.Equal(t, want, err.Existing)
		assert.Contains(t, err.Error(), "exclusively borrowed at "+want)
	} else {
		assert.Empty(t, err.Existing)
		assert.Equal(t, "cellsync: unable to borrow", err.Error())
	}

	w.Release()
	assert.Empty(t, lock.raw.location)
}

func TestSharedBorrowLocationIsEarliest(t *testing.T) {
	if !opt.TrackLocation_ {
		t.Skip("built without borrow location tracking")
	}
	var c RawCellRWLock
	_, _, line, _ := runtime.Caller(0)
	c.RLock()
	c.RLock()

	err := recoverConflict(t, c.Lock)
	assert.Equal(t, "location_test.go:"+strconv.Itoa(line+1), err.Existing)

	c.RUnlock()
	assert.NotEmpty(t, c.location)
	c.RUnlock()
	assert.Empty(t, c.location)
}
