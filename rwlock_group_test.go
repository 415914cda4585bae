package cellsync

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRWLockGroup_Basic(t *testing.T) {
	var g SpinRWLockGroup[string]
	const n = 100

	// Concurrent readers
	var eg errgroup.Group
	for range n {
		eg.Go(func() error {
			g.RLock("key")
			time.Sleep(time.Microsecond)
			g.RUnlock("key")
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	// Writer exclusion
	g.Lock("key")
	done := make(chan struct{})
	go func() {
		g.RLock("key") // Should block
		close(done)
		g.RUnlock("key")
	}()

	select {
	case <-done:
		t.Fatal("RLock acquired while Lock held")
	case <-time.After(10 * time.Millisecond):
	}
	g.Unlock("key")

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("RLock not acquired after Unlock")
	}
}

func TestRWLockGroup_ConcurrentKeys(t *testing.T) {
	var g SpinRWLockGroup[int]
	var held [2]int32
	var eg errgroup.Group
	for i := range 8 {
		eg.Go(func() error {
			k := i % 2
			for range 200 {
				g.Lock(k)
				n := atomic.AddInt32(&held[k], 1)
				atomic.AddInt32(&held[k], -1)
				g.Unlock(k)
				if n != 1 {
					return errMultipleWriters
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for k := range 2 {
		_, ok := g.m.load(k)
		assert.False(t, ok, "entry %d should be dropped after the last Unlock", k)
	}
}

func TestRWLockGroup_RefCounting(t *testing.T) {
	var g SpinRWLockGroup[int]

	g.RLock(1)
	g.RLock(1)
	_, ok := g.m.load(1)
	require.True(t, ok, "entry should exist after RLock")
	assert.False(t, g.TryLock(1))

	g.RUnlock(1)
	assert.True(t, g.IsLocked(1))
	g.RUnlock(1)

	_, ok = g.m.load(1)
	assert.False(t, ok, "entry should be auto-deleted after the last RUnlock")
	assert.False(t, g.IsLocked(1))
}

func TestCellRWLockGroup(t *testing.T) {
	var g CellRWLockGroup[string]

	g.Lock("a")
	g.RLock("b")
	assert.True(t, g.TryRLock("b"))
	assert.False(t, g.TryRLock("a"))
	assert.False(t, g.TryLock("b"))

	err := recoverConflict(t, func() { g.RLock("a") })
	assert.False(t, err.Exclusive)
	err = recoverConflict(t, func() { g.Lock("b") })
	assert.True(t, err.Exclusive)

	// Failed acquisitions do not leak references.
	e, ok := g.m.load("a")
	require.True(t, ok)
	assert.EqualValues(t, 1, e.ref)
	e, ok = g.m.load("b")
	require.True(t, ok)
	assert.EqualValues(t, 2, e.ref)

	g.Unlock("a")
	g.RUnlock("b")
	g.RUnlock("b")
	assert.False(t, g.IsLocked("a"))
	assert.False(t, g.IsLocked("b"))

	assert.PanicsWithValue(t, "cellsync: Unlock of unlocked RWLockGroup key", func() { g.Unlock("a") })
	assert.PanicsWithValue(t, "cellsync: RUnlock of unlocked RWLockGroup key", func() { g.RUnlock("b") })
}
