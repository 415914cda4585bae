package cellsync

import "sync"

// MutexOf owns a value of type T and guards it with a raw mutex R.
// It is the exclusive-only counterpart of RWLockOf.
type MutexOf[R any, P RawMutexPtr[R], T any] struct {
	_     noCopy
	raw   R
	value T
}

// NewMutexOf returns a mutex holding v.
func NewMutexOf[R any, P RawMutexPtr[R], T any](v T) *MutexOf[R, P, T] {
	return &MutexOf[R, P, T]{value: v}
}

func (m *MutexOf[R, P, T]) rawLock() P {
	return P(&m.raw)
}

// Lock acquires the mutex. Over a cell it panics with a
// *BorrowConflictError while a MutexGuard is live.
func (m *MutexOf[R, P, T]) Lock() MutexGuard[R, P, T] {
	m.rawLock().Lock()
	return MutexGuard[R, P, T]{mu: m}
}

func (m *MutexOf[R, P, T]) TryLock() (g MutexGuard[R, P, T], ok bool) {
	if !m.rawLock().TryLock() {
		return MutexGuard[R, P, T]{}, false
	}
	return MutexGuard[R, P, T]{mu: m}, true
}

// WithLock calls fn with a pointer to the value while holding the mutex,
// releasing it on every exit from fn.
func (m *MutexOf[R, P, T]) WithLock(fn func(v *T)) {
	g := m.Lock()
	defer g.Release()
	fn(g.Ptr())
}

// IntoInner returns the value. It panics with a *BorrowConflictError if a
// guard is outstanding.
func (m *MutexOf[R, P, T]) IntoInner() T {
	raw := m.rawLock()
	if !raw.TryLock() {
		panic(conflictOf(raw, true))
	}
	v := m.value
	raw.Unlock()
	return v
}

func (m *MutexOf[R, P, T]) IsLocked() bool {
	return isMutexLocked(m.rawLock())
}

// MutexGuard is held access to the value of a MutexOf.
type MutexGuard[R any, P RawMutexPtr[R], T any] struct {
	_  noCopy
	mu *MutexOf[R, P, T]
}

func (g *MutexGuard[R, P, T]) held() *MutexOf[R, P, T] {
	if g.mu == nil {
		panic("cellsync: use of released MutexGuard")
	}
	return g.mu
}

func (g *MutexGuard[R, P, T]) Get() T {
	return g.held().value
}

func (g *MutexGuard[R, P, T]) Ptr() *T {
	return &g.held().value
}

func (g *MutexGuard[R, P, T]) Set(v T) {
	g.held().value = v
}

// Release unlocks the mutex. Releasing twice is a no-op.
func (g *MutexGuard[R, P, T]) Release() {
	m := g.mu
	if m == nil {
		return
	}
	g.mu = nil
	m.rawLock().Unlock()
}

// CellMutex is the single-threaded MutexOf over RawCellMutex.
type CellMutex[T any] = MutexOf[RawCellMutex, *RawCellMutex, T]

type SyncMutex[T any] = MutexOf[sync.Mutex, *sync.Mutex, T]

// NewCellMutex returns a single-threaded mutex holding v.
func NewCellMutex[T any](v T) *CellMutex[T] {
	return &CellMutex[T]{value: v}
}
