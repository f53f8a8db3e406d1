package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AddFlitFillsOwnAllotmentBeforeSharedPool(t *testing.T) {
	b := NewBuffer(1, 2, 1)

	ok, err := b.AddFlit(0, 0, 0, &Flit{ID: 1, Head: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.AddFlit(0, 0, 0, &Flit{ID: 2})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, b.Full(0))

	// Third flit spills into the shared pool.
	ok, err = b.AddFlit(0, 0, 0, &Flit{ID: 3})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b.Full(0))
}

func TestBuffer_AddFlitRejectsWhenExhausted(t *testing.T) {
	b := NewBuffer(1, 1, 0)
	ok, err := b.AddFlit(0, 0, 0, &Flit{ID: 1, Head: true})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.AddFlit(0, 0, 0, &Flit{ID: 2})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuffer_AddFlitPropagatesInvariantViolation(t *testing.T) {
	b := NewBuffer(1, 4, 0)
	_, err := b.AddFlit(1, 2, 0, &Flit{ID: 9, Head: false})
	require.Error(t, err)
	var iv *InvariantViolation
	assert.ErrorAs(t, err, &iv)
}

func TestBuffer_RemoveFlitReleasesSharedSlot(t *testing.T) {
	b := NewBuffer(1, 1, 1)
	_, _ = b.AddFlit(0, 0, 0, &Flit{ID: 1, Head: true})
	_, _ = b.AddFlit(0, 0, 0, &Flit{ID: 2})
	assert.True(t, b.Full(0))

	f := b.RemoveFlit(0)
	assert.Equal(t, 1, f.ID)
	assert.False(t, b.Full(0))
}

func TestBuffer_EmptyAndFrontFlit(t *testing.T) {
	b := NewBuffer(2, 2, 0)
	assert.True(t, b.Empty(0))
	assert.Nil(t, b.FrontFlit(0))

	_, _ = b.AddFlit(0, 0, 1, &Flit{ID: 5, Head: true})
	assert.False(t, b.Empty(1))
	assert.Equal(t, 5, b.FrontFlit(1).ID)
}

func TestBuffer_StateDelegatesToVC(t *testing.T) {
	b := NewBuffer(1, 2, 0)
	assert.Equal(t, VCIdle, b.State(0))
	b.SetState(0, VCActive)
	assert.Equal(t, VCActive, b.State(0))
	assert.Equal(t, 0, b.StateTime(0))
}

func TestBuffer_SetOutputDelegatesToVC(t *testing.T) {
	b := NewBuffer(1, 2, 0)
	b.SetOutput(0, 3, 1)
	assert.Equal(t, 3, b.VC(0).OutputPort())
	assert.Equal(t, 1, b.VC(0).OutputVC())
}

func TestBuffer_AdvanceTimeTicksEveryVC(t *testing.T) {
	b := NewBuffer(2, 2, 0)
	b.AdvanceTime()
	b.AdvanceTime()
	assert.Equal(t, 2, b.StateTime(0))
	assert.Equal(t, 2, b.StateTime(1))
}
