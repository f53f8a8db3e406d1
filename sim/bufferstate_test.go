package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferState_InitialCreditsEqualVCSize(t *testing.T) {
	bs := NewBufferState(2, 4)
	assert.Equal(t, 4, bs.Credits(0))
	assert.Equal(t, 4, bs.Credits(1))
	assert.True(t, bs.HasCredit(0))
	assert.Equal(t, 0, bs.Occupancy(0))
}

func TestBufferState_SendingFlitDecrementsCreditAndTracksInUse(t *testing.T) {
	bs := NewBufferState(1, 4)
	bs.TakeBuffer(0)
	assert.False(t, bs.IsAvailableFor(0))

	bs.SendingFlit(&Flit{Tail: false}, 0)
	assert.Equal(t, 3, bs.Credits(0))
	assert.Equal(t, 1, bs.Occupancy(0))
	assert.False(t, bs.IsAvailableFor(0))

	bs.SendingFlit(&Flit{Tail: true}, 0)
	assert.True(t, bs.IsAvailableFor(0))
}

func TestBufferState_ProcessCreditRestoresCapacity(t *testing.T) {
	bs := NewBufferState(1, 2)
	bs.SendingFlit(&Flit{Tail: false}, 0)
	bs.SendingFlit(&Flit{Tail: true}, 0)
	assert.Equal(t, 0, bs.Credits(0))

	c := &Credit{VCs: []int{0}}
	bs.ProcessCredit(c)
	assert.Equal(t, 1, bs.Credits(0))
}

func TestBufferState_ProcessCreditClampsAtVCSize(t *testing.T) {
	bs := NewBufferState(1, 2)
	c := &Credit{VCs: []int{0}}
	bs.ProcessCredit(c)
	assert.Equal(t, 2, bs.Credits(0))
}

func TestBufferState_HasCreditFalseWhenExhausted(t *testing.T) {
	bs := NewBufferState(1, 1)
	bs.SendingFlit(&Flit{Tail: true}, 0)
	assert.False(t, bs.HasCredit(0))
}
