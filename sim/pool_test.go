package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poolItem struct{ n int }

func TestPool_NewAllocatesWhenFreeListEmpty(t *testing.T) {
	calls := 0
	p := NewPool(func() *poolItem { calls++; return &poolItem{} })

	a := p.New()
	b := p.New()

	require.NotSame(t, a, b)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, p.Len())
}

func TestPool_RetireReusesFromFreeList(t *testing.T) {
	calls := 0
	p := NewPool(func() *poolItem { calls++; return &poolItem{} })

	a := p.New()
	p.Retire(a)
	b := p.New()

	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, p.Len())
}

func TestPool_DestroyAllClearsBookkeeping(t *testing.T) {
	p := NewPool(func() *poolItem { return &poolItem{} })
	p.New()
	p.New()
	p.DestroyAll()
	assert.Equal(t, 0, p.Len())
}
