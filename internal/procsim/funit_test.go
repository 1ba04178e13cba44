package procsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFuPools(t *testing.T) {
	p := NewFuPools(2, 1, 3)
	require.Len(t, p.Pool(ClassK0), 2)
	require.Len(t, p.Pool(ClassK1), 1)
	require.Len(t, p.Pool(ClassK2), 3)

	for _, c := range []OpClass{ClassK0, ClassK1, ClassK2} {
		for _, u := range p.Pool(c) {
			require.Equal(t, c, u.Class)
			require.False(t, u.Busy)
		}
	}
}

func TestFuPoolsFreeIndex(t *testing.T) {
	p := NewFuPools(3, 0, 0)

	require.Equal(t, 0, p.FreeIndex(ClassK0))

	pool := p.Pool(ClassK0)
	pool[0].Busy = true

	require.Equal(t, 1, p.FreeIndex(ClassK0), "lowest-index free FU must be preferred")

	pool[1].Busy = true
	pool[2].Busy = true
	require.Equal(t, -1, p.FreeIndex(ClassK0))

	require.Equal(t, -1, p.FreeIndex(ClassK1), "empty pool has no free units")
}

func TestFuPoolsAnyBusy(t *testing.T) {
	p := NewFuPools(1, 1, 0)
	require.False(t, p.AnyBusy())

	p.Pool(ClassK1)[0].Busy = true
	require.True(t, p.AnyBusy())
}
