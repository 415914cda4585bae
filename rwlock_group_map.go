//go:build !race

package cellsync

import (
	"github.com/llxisdsh/pb"
)

// rwLockGroupMap holds the entries of an RWLockGroup in a pb.MapOf.
// pb reads bucket pointers without barriers on TSO platforms, which the
// race detector reports, so -race builds use rwlock_group_map_race.go.
type rwLockGroupMap[K comparable, R any] struct {
	m pb.MapOf[K, *rwLockGroupEntry[R]]
}

// acquire returns the entry of k with its reference count raised.
func (s *rwLockGroupMap[K, R]) acquire(k K) *rwLockGroupEntry[R] {
	e, _ := s.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *rwLockGroupEntry[R]]) (*pb.EntryOf[K, *rwLockGroupEntry[R]], *rwLockGroupEntry[R], bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &rwLockGroupEntry[R]{ref: 1}
			return &pb.EntryOf[K, *rwLockGroupEntry[R]]{Value: e}, e, false
		},
	)
	return e
}

// release drops one reference of e and deletes it once unreferenced.
func (s *rwLockGroupMap[K, R]) release(k K, e *rwLockGroupEntry[R]) {
	_, _ = s.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *rwLockGroupEntry[R]]) (*pb.EntryOf[K, *rwLockGroupEntry[R]], *rwLockGroupEntry[R], bool) {
			if l == nil || l.Value != e {
				return l, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, false
			}
			return l, l.Value, true
		},
	)
}

func (s *rwLockGroupMap[K, R]) load(k K) (*rwLockGroupEntry[R], bool) {
	return s.m.Load(k)
}
