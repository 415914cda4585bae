package cellsync

import (
	"math"
	"sync"

	"github.com/llxisdsh/cellsync/internal/opt"
)

// RawCellRWLock is a single-threaded reader/writer lock. It keeps a borrow
// count instead of synchronizing: any number of shared borrows, or exactly
// one exclusive borrow, and never both.
//
// Because there is only one execution context, a conflicting request can
// never be satisfied by waiting. RLock and Lock therefore panic with a
// *BorrowConflictError where a concurrent lock would block; TryRLock and
// TryLock report false instead.
//
// A RawCellRWLock must not be used by more than one goroutine. Nothing
// detects such use: it is a data race on the borrow count.
//
// The zero value is an unborrowed lock.
type RawCellRWLock struct {
	_ noCopy
	// borrows is 0 when unused, n > 0 for n shared borrows and
	// exclusiveBorrow while exclusively borrowed.
	borrows int
	// location of the earliest live borrow, only with opt.TrackLocation_.
	location string
}

const exclusiveBorrow = -1

func (c *RawCellRWLock) tryBorrowShared() *BorrowConflictError {
	if c.borrows < 0 {
		return c.conflict(false)
	}
	// Only reachable by leaking guards at an absurd rate.
	if c.borrows == math.MaxInt {
		panic("cellsync: too many shared borrows")
	}
	if c.borrows == 0 && opt.TrackLocation_ {
		c.location = callerLocation()
	}
	c.borrows++
	return nil
}

func (c *RawCellRWLock) tryBorrowExclusive() *BorrowConflictError {
	if c.borrows != 0 {
		return c.conflict(true)
	}
	if opt.TrackLocation_ {
		c.location = callerLocation()
	}
	c.borrows = exclusiveBorrow
	return nil
}

func (c *RawCellRWLock) conflict(exclusive bool) *BorrowConflictError {
	return &BorrowConflictError{Exclusive: exclusive, Existing: c.location}
}

// RLock takes a shared borrow. It panics with a *BorrowConflictError if the
// cell is exclusively borrowed.
func (c *RawCellRWLock) RLock() {
	if err := c.tryBorrowShared(); err != nil {
		panic(err)
	}
}

// TryRLock takes a shared borrow unless the cell is exclusively borrowed.
func (c *RawCellRWLock) TryRLock() bool {
	return c.tryBorrowShared() == nil
}

// RUnlock releases one shared borrow.
func (c *RawCellRWLock) RUnlock() {
	if c.borrows <= 0 {
		panic("cellsync: RUnlock of unlocked RawCellRWLock")
	}
	c.borrows--
	if c.borrows == 0 {
		c.location = ""
	}
}

// Lock takes the exclusive borrow. It panics with a *BorrowConflictError if
// any borrow is live.
func (c *RawCellRWLock) Lock() {
	if err := c.tryBorrowExclusive(); err != nil {
		panic(err)
	}
}

// TryLock takes the exclusive borrow if no borrow is live.
func (c *RawCellRWLock) TryLock() bool {
	return c.tryBorrowExclusive() == nil
}

// Unlock releases the exclusive borrow.
func (c *RawCellRWLock) Unlock() {
	if c.borrows != exclusiveBorrow {
		panic("cellsync: Unlock of unlocked RawCellRWLock")
	}
	c.borrows = 0
	c.location = ""
}

// RLockRecursive is RLock. Shared borrows of a cell nest freely, so the
// recursive form needs no extra bookkeeping.
func (c *RawCellRWLock) RLockRecursive() {
	c.RLock()
}

// TryRLockRecursive is TryRLock.
func (c *RawCellRWLock) TryRLockRecursive() bool {
	return c.TryRLock()
}

func (c *RawCellRWLock) IsLocked() bool {
	return c.borrows != 0
}

func (c *RawCellRWLock) IsLockedExclusive() bool {
	return c.borrows < 0
}

// Readers returns the number of live shared borrows.
func (c *RawCellRWLock) Readers() int {
	return max(c.borrows, 0)
}

// RLocker returns a sync.Locker whose Lock and Unlock take and release a
// shared borrow.
func (c *RawCellRWLock) RLocker() sync.Locker {
	return (*cellRLocker)(c)
}

type cellRLocker RawCellRWLock

func (r *cellRLocker) Lock()   { (*RawCellRWLock)(r).RLock() }
func (r *cellRLocker) Unlock() { (*RawCellRWLock)(r).RUnlock() }
