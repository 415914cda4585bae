package cellsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellMutex(t *testing.T) {
	m := NewCellMutex([]string{"a"})
	g := m.Lock()
	g.Set(append(g.Get(), "b"))
	assert.True(t, m.IsLocked())

	_, ok := m.TryLock()
	assert.False(t, ok)
	err := recoverConflict(t, func() { m.Lock() })
	assert.True(t, err.Exclusive)
	recoverConflict(t, func() { m.IntoInner() })

	g.Release()
	g.Release()
	assert.False(t, m.IsLocked())
	assert.PanicsWithValue(t, "cellsync: use of released MutexGuard", func() { g.Ptr() })

	m.WithLock(func(v *[]string) {
		*v = append(*v, "c")
	})
	assert.Equal(t, []string{"a", "b", "c"}, m.IntoInner())
}

func TestCellMutex_ReleaseOnPanic(t *testing.T) {
	var m CellMutex[int]
	assert.Panics(t, func() {
		m.WithLock(func(*int) { panic("boom") })
	})
	g, ok := m.TryLock()
	require.True(t, ok)
	g.Release()
}

func TestMutexOf_GenericOverRawMutexes(t *testing.T) {
	bump := func(get func() (int, func())) int {
		v, done := get()
		done()
		return v
	}

	cell := NewCellMutex(1)
	syncm := NewMutexOf[sync.Mutex, *sync.Mutex](1)
	ticket := NewMutexOf[TicketLock, *TicketLock](1)

	assert.Equal(t, 2, bump(func() (int, func()) {
		g := cell.Lock()
		*g.Ptr()++
		return g.Get(), g.Release
	}))
	assert.Equal(t, 2, bump(func() (int, func()) {
		g := syncm.Lock()
		*g.Ptr()++
		return g.Get(), g.Release
	}))
	assert.Equal(t, 2, bump(func() (int, func()) {
		g := ticket.Lock()
		*g.Ptr()++
		return g.Get(), g.Release
	}))

	// sync.Mutex has no state query; IsLocked probes with TryLock.
	g := syncm.Lock()
	assert.True(t, syncm.IsLocked())
	g.Release()
	assert.False(t, syncm.IsLocked())
	assert.False(t, ticket.IsLocked())
	assert.Equal(t, 2, ticket.IntoInner())
}
