package cellsync

import (
	"sync/atomic"
)

// SpinRWLock is a spin-based reader/writer lock, the concurrent
// counterpart of RawCellRWLock for short critical sections.
//
// Lock and RLock busy-wait with backoff until the lock is available.
//
// Size: 4 bytes (plus padding).
type SpinRWLock struct {
	_     noCopy
	state atomic.Uint32
}

const (
	rwWriteMask = 1
	rwReadShift = 1
	rwReadUnit  = 1 << rwReadShift
)

// Lock acquires the write lock.
// It spins until there is neither a writer nor a reader.
func (rw *SpinRWLock) Lock() {
	var spins int
	for !rw.TryLock() {
		delay(&spins)
	}
}

// TryLock acquires the write lock if the lock is completely free.
func (rw *SpinRWLock) TryLock() bool {
	return rw.state.Load() == 0 && rw.state.CompareAndSwap(0, rwWriteMask)
}

// Unlock releases the write lock.
func (rw *SpinRWLock) Unlock() {
	if rw.state.Load() != rwWriteMask {
		panic("cellsync: Unlock of unlocked SpinRWLock")
	}
	rw.state.Store(0)
}

// RLock acquires a read lock.
func (rw *SpinRWLock) RLock() {
	var spins int
	for {
		s := rw.state.Load()
		if s&rwWriteMask == 0 {
			if rw.state.CompareAndSwap(s, s+rwReadUnit) {
				return
			}
			// State moved under us; retry without backing off.
			continue
		}
		delay(&spins)
	}
}

// TryRLock acquires a read lock unless a writer holds the lock.
func (rw *SpinRWLock) TryRLock() bool {
	for {
		s := rw.state.Load()
		if s&rwWriteMask != 0 {
			return false
		}
		if rw.state.CompareAndSwap(s, s+rwReadUnit) {
			return true
		}
	}
}

// RUnlock releases a read lock. It panics, leaving the state as it was,
// if no read lock is held.
func (rw *SpinRWLock) RUnlock() {
	for {
		s := rw.state.Load()
		if s>>rwReadShift == 0 {
			panic("cellsync: RUnlock of unlocked SpinRWLock")
		}
		if rw.state.CompareAndSwap(s, s-rwReadUnit) {
			return
		}
	}
}

func (rw *SpinRWLock) IsLocked() bool {
	return rw.state.Load() != 0
}

func (rw *SpinRWLock) IsLockedExclusive() bool {
	return rw.state.Load()&rwWriteMask != 0
}
