package cellsync

// RawCellMutex is the exclusive-only form of RawCellRWLock. It has the
// same cost; prefer RawCellRWLock unless the calling code is written
// against a plain mutex.
//
// The same single-goroutine precondition applies.
type RawCellMutex struct {
	cell RawCellRWLock
}

// Lock panics with a *BorrowConflictError if the mutex is held.
func (m *RawCellMutex) Lock() {
	m.cell.Lock()
}

func (m *RawCellMutex) TryLock() bool {
	return m.cell.TryLock()
}

func (m *RawCellMutex) Unlock() {
	if m.cell.borrows != exclusiveBorrow {
		panic("cellsync: Unlock of unlocked RawCellMutex")
	}
	m.cell.Unlock()
}

func (m *RawCellMutex) IsLocked() bool {
	return m.cell.IsLocked()
}

// IsLockedExclusive is IsLocked: a mutex is only ever held exclusively.
func (m *RawCellMutex) IsLockedExclusive() bool {
	return m.cell.IsLockedExclusive()
}

func (m *RawCellMutex) conflict(exclusive bool) *BorrowConflictError {
	return m.cell.conflict(exclusive)
}
