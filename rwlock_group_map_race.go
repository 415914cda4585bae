//go:build race

package cellsync

import (
	"sync"
)

// rwLockGroupMap under the race detector: a mutex-guarded map with the
// same reference counting as the pb.MapOf version.
type rwLockGroupMap[K comparable, R any] struct {
	mu sync.Mutex
	m  map[K]*rwLockGroupEntry[R]
}

func (s *rwLockGroupMap[K, R]) acquire(k K) *rwLockGroupEntry[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.m[k]; ok {
		e.ref++
		return e
	}
	if s.m == nil {
		s.m = make(map[K]*rwLockGroupEntry[R])
	}
	e := &rwLockGroupEntry[R]{ref: 1}
	s.m[k] = e
	return e
}

func (s *rwLockGroupMap[K, R]) release(k K, e *rwLockGroupEntry[R]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[k] != e {
		return
	}
	e.ref--
	if e.ref <= 0 {
		delete(s.m, k)
	}
}

func (s *rwLockGroupMap[K, R]) load(k K) (*rwLockGroupEntry[R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[k]
	return e, ok
}
