package cellsync

import "sync"

// RWLockOf owns a value of type T and guards it with a raw reader/writer
// lock R. Access goes through guards returned by Read and Write.
//
// Code written against RWLockOf runs unchanged over a concurrent raw lock
// (sync.RWMutex, SpinRWLock) or the single-threaded RawCellRWLock; only the
// instantiation differs:
//
//	var shared SyncRWLock[[]int]   // blocks on contention
//	var local CellRWLock[[]int]    // panics on conflict, no synchronization
//
// Usage:
//
//	g := l.Write()
//	defer g.Release()
//	*g.Ptr() = append(*g.Ptr(), 18)
//
// The zero value holds the zero T and is unlocked. An RWLockOf must not be
// copied after first use.
type RWLockOf[R any, P RawRWLockPtr[R], T any] struct {
	_     noCopy
	raw   R
	value T
}

// NewRWLockOf returns a lock holding v.
func NewRWLockOf[R any, P RawRWLockPtr[R], T any](v T) *RWLockOf[R, P, T] {
	return &RWLockOf[R, P, T]{value: v}
}

func (l *RWLockOf[R, P, T]) rawLock() P {
	return P(&l.raw)
}

// Read acquires shared access. Over a concurrent raw lock it blocks; over a
// cell it panics with a *BorrowConflictError while a WriteGuard is live.
func (l *RWLockOf[R, P, T]) Read() ReadGuard[R, P, T] {
	l.rawLock().RLock()
	return ReadGuard[R, P, T]{lock: l}
}

// ReadRecursive is Read. Shared acquisitions may nest on every raw lock in
// this package as long as no writer intervenes.
func (l *RWLockOf[R, P, T]) ReadRecursive() ReadGuard[R, P, T] {
	l.rawLock().RLock()
	return ReadGuard[R, P, T]{lock: l}
}

// TryRead acquires shared access if it is available right now.
// On failure the returned guard is empty and ok is false.
func (l *RWLockOf[R, P, T]) TryRead() (g ReadGuard[R, P, T], ok bool) {
	if !l.rawLock().TryRLock() {
		return ReadGuard[R, P, T]{}, false
	}
	return ReadGuard[R, P, T]{lock: l}, true
}

// Write acquires exclusive access. Over a concurrent raw lock it blocks;
// over a cell it panics with a *BorrowConflictError while any guard is live.
func (l *RWLockOf[R, P, T]) Write() WriteGuard[R, P, T] {
	l.rawLock().Lock()
	return WriteGuard[R, P, T]{lock: l}
}

// TryWrite acquires exclusive access if it is available right now.
func (l *RWLockOf[R, P, T]) TryWrite() (g WriteGuard[R, P, T], ok bool) {
	if !l.rawLock().TryLock() {
		return WriteGuard[R, P, T]{}, false
	}
	return WriteGuard[R, P, T]{lock: l}, true
}

// WithRead calls fn with the value under shared access. The access is
// released when fn returns or panics.
func (l *RWLockOf[R, P, T]) WithRead(fn func(v T)) {
	g := l.Read()
	defer g.Release()
	fn(g.Get())
}

// WithWrite calls fn with a pointer to the value under exclusive access.
// The access is released when fn returns or panics.
func (l *RWLockOf[R, P, T]) WithWrite(fn func(v *T)) {
	g := l.Write()
	defer g.Release()
	fn(g.Ptr())
}

// IntoInner returns the value. It panics with a *BorrowConflictError if a
// guard is outstanding. The lock should not be used afterwards.
func (l *RWLockOf[R, P, T]) IntoInner() T {
	raw := l.rawLock()
	if !raw.TryLock() {
		panic(conflictOf(raw, true))
	}
	v := l.value
	raw.Unlock()
	return v
}

// IsLocked reports whether any guard is live.
func (l *RWLockOf[R, P, T]) IsLocked() bool {
	return isLocked(l.rawLock())
}

// IsLockedExclusive reports whether a WriteGuard is live.
func (l *RWLockOf[R, P, T]) IsLockedExclusive() bool {
	return isLockedExclusive(l.rawLock())
}

// ReadGuard is shared access to the value of an RWLockOf. It must be
// released exactly once; Release on an already released guard does nothing.
//
// A guard must not be copied: each copy would release the same acquisition
// again and corrupt the lock's reader count. go vet's copylocks check
// reports copies.
type ReadGuard[R any, P RawRWLockPtr[R], T any] struct {
	_    noCopy
	lock *RWLockOf[R, P, T]
}

func (g *ReadGuard[R, P, T]) held() *RWLockOf[R, P, T] {
	if g.lock == nil {
		panic("cellsync: use of released ReadGuard")
	}
	return g.lock
}

// Get returns the value. Reference types (slices, maps, pointers) still
// alias the guarded value and must only be read.
func (g *ReadGuard[R, P, T]) Get() T {
	return g.held().value
}

// Release gives up the shared access.
func (g *ReadGuard[R, P, T]) Release() {
	l := g.lock
	if l == nil {
		return
	}
	g.lock = nil
	l.rawLock().RUnlock()
}

// WriteGuard is exclusive access to the value of an RWLockOf.
// Release semantics are those of ReadGuard.
type WriteGuard[R any, P RawRWLockPtr[R], T any] struct {
	_    noCopy
	lock *RWLockOf[R, P, T]
}

func (g *WriteGuard[R, P, T]) held() *RWLockOf[R, P, T] {
	if g.lock == nil {
		panic("cellsync: use of released WriteGuard")
	}
	return g.lock
}

func (g *WriteGuard[R, P, T]) Get() T {
	return g.held().value
}

// Ptr returns a pointer to the guarded value. It must not be kept past
// Release.
func (g *WriteGuard[R, P, T]) Ptr() *T {
	return &g.held().value
}

func (g *WriteGuard[R, P, T]) Set(v T) {
	g.held().value = v
}

// Release gives up the exclusive access.
func (g *WriteGuard[R, P, T]) Release() {
	l := g.lock
	if l == nil {
		return
	}
	g.lock = nil
	l.rawLock().Unlock()
}

// CellRWLock is the single-threaded RWLockOf over RawCellRWLock.
type CellRWLock[T any] = RWLockOf[RawCellRWLock, *RawCellRWLock, T]

// CellReadGuard and CellWriteGuard are the guards of a CellRWLock.
type (
	CellReadGuard[T any]  = ReadGuard[RawCellRWLock, *RawCellRWLock, T]
	CellWriteGuard[T any] = WriteGuard[RawCellRWLock, *RawCellRWLock, T]
)

// SyncRWLock is RWLockOf over sync.RWMutex.
type SyncRWLock[T any] = RWLockOf[sync.RWMutex, *sync.RWMutex, T]

// SpinRWLockOf is RWLockOf over SpinRWLock.
type SpinRWLockOf[T any] = RWLockOf[SpinRWLock, *SpinRWLock, T]

// NewCellRWLock returns a single-threaded lock holding v.
func NewCellRWLock[T any](v T) *CellRWLock[T] {
	return &CellRWLock[T]{value: v}
}
