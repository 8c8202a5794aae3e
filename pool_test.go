package xstring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolGetReturnsEmpty(t *testing.T) {
	t.Parallel()

	f, _ := newTracked(t)
	p := NewPool(f, 0)

	s := p.Get()
	require.True(t, s.Empty())
	require.NoError(t, s.AppendString("scratch"))
	p.Put(s)

	// Whether or not the pool hands back the same value, it is empty.
	s2 := p.Get()
	require.True(t, s2.Empty())
	p.Put(s2)
}

func TestPoolPutResetsButKeepsSmallAllocations(t *testing.T) {
	t.Parallel()

	f, tr := newTracked(t)
	p := NewPool(f, 16)

	s := p.Get()
	require.NoError(t, s.AppendString("abc"))
	p.Put(s)
	require.True(t, s.Empty())
	require.Equal(t, 6, s.Capacity())
	require.Equal(t, int64(1), tr.Stats().Outstanding())
}

func TestPoolPutClearsOversizeAndForeign(t *testing.T) {
	t.Parallel()

	f, tr := newTracked(t)
	p := NewPool(f, 4)

	big := p.Get()
	require.NoError(t, big.AppendString("abcdef"))
	p.Put(big)
	require.Equal(t, 0, big.Capacity())

	other, _ := newTracked(t)
	foreign := Must(other.FromString("x"))
	p.Put(foreign)
	require.Equal(t, 0, foreign.Capacity())

	require.Equal(t, int64(0), tr.Stats().Outstanding())
	p.Put(nil) // must not panic
}

func TestNewPoolDefaults(t *testing.T) {
	t.Parallel()

	p := NewPool(nil, 0)
	require.NotNil(t, p.f)
	require.Equal(t, defaultMaxRetain, p.maxRetain)
}
