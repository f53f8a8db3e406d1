package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriorityPolicy_ResolvesKnownNames(t *testing.T) {
	cases := map[string]PriorityPolicy{
		"":             NonePriority{},
		"none":         NonePriority{},
		"age":          LocalAgePriority{},
		"local_age":    LocalAgePriority{},
		"queue_length": QueueLengthPriority{},
		"hop_count":    HopCountPriority{},
		"other":        OtherPriority{},
	}
	for name, want := range cases {
		got, err := NewPriorityPolicy(name)
		require.NoError(t, err)
		assert.IsType(t, want, got)
	}
}

func TestNewPriorityPolicy_RejectsUnknownName(t *testing.T) {
	_, err := NewPriorityPolicy("bogus")
	require.Error(t, err)
}

func TestLocalAgePriority_OlderFlitWins(t *testing.T) {
	p := LocalAgePriority{}
	older := p.Compute(nil, &Flit{Time: 10})
	newer := p.Compute(nil, &Flit{Time: 20})
	assert.Greater(t, older, newer)
	assert.Equal(t, math.MaxInt32-10, older)
}

func TestQueueLengthPriority_FavorsLongerVC(t *testing.T) {
	v := NewVC(0)
	_ = v.AddFlit(0, 0, &Flit{ID: 1, Head: true, Tail: false, PID: 1})
	_ = v.AddFlit(0, 0, &Flit{ID: 2, PID: 1, Tail: true})
	assert.Equal(t, 2, QueueLengthPriority{}.Compute(v, nil))
}

func TestHopCountPriority_UsesFlitHops(t *testing.T) {
	assert.Equal(t, 4, HopCountPriority{}.Compute(nil, &Flit{Hops: 4}))
}

func TestOtherPriority_PassesThroughFlitPriority(t *testing.T) {
	assert.Equal(t, 7, OtherPriority{}.Compute(nil, &Flit{Pri: 7}))
}
