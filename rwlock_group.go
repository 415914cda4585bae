package cellsync

import (
	"golang.org/x/sys/cpu"
)

// RWLockGroup allows shared reader/writer locking on arbitrary keys, one
// raw lock R per key.
//
// Features:
//   - RLock/RUnlock for shared read access.
//   - Lock/Unlock for exclusive write access.
//   - TryLock/TryRLock for non-blocking acquisition.
//   - Infinite Keys & Auto-Cleanup: a key's entry is dropped when its last
//     holder releases.
//
// Over SpinRWLock or sync.RWMutex the group is safe for concurrent use.
// CellRWLockGroup keys RawCellRWLock instead: the same bookkeeping for a
// single goroutine, where a conflicting Lock or RLock panics with a
// *BorrowConflictError and leaves no entry behind.
//
// Usage:
//
//	var group SpinRWLockGroup[string]
//
//	// Readers
//	group.RLock("config")
//	read(config)
//	group.RUnlock("config")
//
//	// Writer
//	group.Lock("config")
//	write(config)
//	group.Unlock("config")
type RWLockGroup[K comparable, R any, P RawRWLockPtr[R]] struct {
	_ noCopy
	m rwLockGroupMap[K, R]
}

type rwLockGroupEntry[R any] struct {
	mu  R
	ref int32
	_   cpu.CacheLinePad
}

// CellRWLockGroup is a single-threaded RWLockGroup.
type CellRWLockGroup[K comparable] = RWLockGroup[K, RawCellRWLock, *RawCellRWLock]

// SpinRWLockGroup is RWLockGroup over SpinRWLock.
type SpinRWLockGroup[K comparable] = RWLockGroup[K, SpinRWLock, *SpinRWLock]

func (g *RWLockGroup[K, R, P]) held(k K, op string) *rwLockGroupEntry[R] {
	e, ok := g.m.load(k)
	if !ok {
		panic("cellsync: " + op + " of unlocked RWLockGroup key")
	}
	return e
}

func (g *RWLockGroup[K, R, P]) Lock(k K) {
	e := g.m.acquire(k)
	locked := false
	defer func() {
		if !locked {
			g.m.release(k, e)
		}
	}()
	P(&e.mu).Lock()
	locked = true
}

func (g *RWLockGroup[K, R, P]) TryLock(k K) bool {
	e := g.m.acquire(k)
	if !P(&e.mu).TryLock() {
		g.m.release(k, e)
		return false
	}
	return true
}

func (g *RWLockGroup[K, R, P]) Unlock(k K) {
	e := g.held(k, "Unlock")
	P(&e.mu).Unlock()
	g.m.release(k, e)
}

func (g *RWLockGroup[K, R, P]) RLock(k K) {
	e := g.m.acquire(k)
	locked := false
	defer func() {
		if !locked {
			g.m.release(k, e)
		}
	}()
	P(&e.mu).RLock()
	locked = true
}

func (g *RWLockGroup[K, R, P]) TryRLock(k K) bool {
	e := g.m.acquire(k)
	if !P(&e.mu).TryRLock() {
		g.m.release(k, e)
		return false
	}
	return true
}

func (g *RWLockGroup[K, R, P]) RUnlock(k K) {
	e := g.held(k, "RUnlock")
	P(&e.mu).RUnlock()
	g.m.release(k, e)
}

// IsLocked reports whether k is held in any mode.
func (g *RWLockGroup[K, R, P]) IsLocked(k K) bool {
	e, ok := g.m.load(k)
	return ok && isLocked(P(&e.mu))
}
