package cellsync

import "sync"

// RawRWLock is the reader/writer lock contract the containers in this
// package are generic over.
//
// A concurrent implementation blocks in Lock and RLock until the lock is
// available. RawCellRWLock, the single-threaded implementation, cannot wait
// for anyone and panics instead.
//
// *sync.RWMutex, *SpinRWLock and *RawCellRWLock all satisfy it.
type RawRWLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
	TryLock() bool
	TryRLock() bool
}

// RawMutex is the exclusive-only lock contract.
//
// *sync.Mutex, *TicketLock and *RawCellMutex all satisfy it.
type RawMutex interface {
	sync.Locker
	TryLock() bool
}

// RawRWLockPtr constrains a pointer to a raw reader/writer lock R, so that
// the lock can live by value inside a container.
type RawRWLockPtr[R any] interface {
	*R
	RawRWLock
}

// RawMutexPtr constrains a pointer to a raw mutex R.
type RawMutexPtr[R any] interface {
	*R
	RawMutex
}

// Locked is implemented by raw locks that can report their state without
// acquiring.
type Locked interface {
	IsLocked() bool
	IsLockedExclusive() bool
}

var (
	_ RawRWLock = (*sync.RWMutex)(nil)
	_ RawRWLock = (*SpinRWLock)(nil)
	_ RawRWLock = (*RawCellRWLock)(nil)
	_ RawMutex  = (*sync.Mutex)(nil)
	_ RawMutex  = (*TicketLock)(nil)
	_ RawMutex  = (*RawCellMutex)(nil)
	_ Locked    = (*SpinRWLock)(nil)
	_ Locked    = (*RawCellRWLock)(nil)
	_ Locked    = (*RawCellMutex)(nil)
	_ Locked    = (*TicketLock)(nil)
)

// isLocked probes r. Raw locks that report their own state are asked,
// others are probed with a try-acquire that is released immediately.
func isLocked(r RawRWLock) bool {
	if q, ok := r.(Locked); ok {
		return q.IsLocked()
	}
	if r.TryLock() {
		r.Unlock()
		return false
	}
	return true
}

func isMutexLocked(r RawMutex) bool {
	if q, ok := r.(Locked); ok {
		return q.IsLocked()
	}
	if r.TryLock() {
		r.Unlock()
		return false
	}
	return true
}

func isLockedExclusive(r RawRWLock) bool {
	if q, ok := r.(Locked); ok {
		return q.IsLockedExclusive()
	}
	if r.TryRLock() {
		r.RUnlock()
		return false
	}
	return true
}

// conflictReporter is implemented by the cell locks so a container can
// panic with the same error the raw lock would have produced.
type conflictReporter interface {
	conflict(exclusive bool) *BorrowConflictError
}

func conflictOf(r any, exclusive bool) *BorrowConflictError {
	if c, ok := r.(conflictReporter); ok {
		return c.conflict(exclusive)
	}
	return &BorrowConflictError{Exclusive: exclusive}
}
