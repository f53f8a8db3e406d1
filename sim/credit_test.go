package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredit_AddVC(t *testing.T) {
	c := &Credit{}
	c.AddVC(1)
	c.AddVC(3)
	assert.Equal(t, []int{1, 3}, c.VCs)
}

func TestCredit_Reset(t *testing.T) {
	c := &Credit{ID: 7, VCs: []int{1, 2}, Head: true, Tail: true}
	c.Reset()
	assert.Equal(t, 0, c.ID)
	assert.Empty(t, c.VCs)
	assert.False(t, c.Head)
	assert.False(t, c.Tail)
}

func TestCreditPool_RetireClearsVCs(t *testing.T) {
	p := NewCreditPool()
	c := p.New()
	c.AddVC(2)
	p.Retire(c)

	c2 := p.New()
	assert.Same(t, c, c2)
	assert.Empty(t, c2.VCs)
}
