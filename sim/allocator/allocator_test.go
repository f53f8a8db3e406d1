package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAllocators(t *testing.T, inputs, outputs int) map[string]Allocator {
	t.Helper()
	m := map[string]Allocator{
		"separable_input_first":  NewSeparableInputFirst("round_robin", inputs, outputs),
		"separable_output_first": NewSeparableOutputFirst("round_robin", inputs, outputs),
		"wavefront":              NewWavefront(inputs, outputs),
		"wavefront_rr":           NewRRWavefront(inputs, outputs),
		"islip":                  NewISlip(inputs, outputs, 3),
		"pim":                    NewPIM(inputs, outputs, 3),
		"loa":                    NewLOA(inputs, outputs),
		"selalloc":               NewSelAlloc(inputs, outputs, 3),
		"maxsize":                NewMaxSize(inputs, outputs),
	}
	return m
}

func TestAllocators_EmptyRequests_ProduceEmptyMatching(t *testing.T) {
	// P8: idempotent reset — after clear, allocate returns the empty matching.
	for name, a := range allAllocators(t, 4, 4) {
		a.Clear()
		a.Allocate()
		for in := 0; in < 4; in++ {
			assert.Equal(t, -1, a.OutputAssigned(in), "%s: input %d should be unmatched", name, in)
		}
	}
}

func TestAllocators_SingleRequest_Grants(t *testing.T) {
	for name, a := range allAllocators(t, 4, 4) {
		a.Clear()
		a.AddRequest(1, 2, 42, 0, 0)
		a.Allocate()
		assert.Equal(t, 2, a.OutputAssigned(1), "%s", name)
		assert.Equal(t, 1, a.InputAssigned(2), "%s", name)
	}
}

func TestAllocators_NoOutputConflict_BothGrant(t *testing.T) {
	for name, a := range allAllocators(t, 4, 4) {
		a.Clear()
		a.AddRequest(0, 0, 1, 0, 0)
		a.AddRequest(1, 1, 1, 0, 0)
		a.Allocate()
		assert.Equal(t, 0, a.OutputAssigned(0), "%s", name)
		assert.Equal(t, 1, a.OutputAssigned(1), "%s", name)
	}
}

func TestAllocators_OutputConflict_ExactlyOneWins(t *testing.T) {
	for name, a := range allAllocators(t, 4, 4) {
		a.Clear()
		a.AddRequest(0, 2, 1, 0, 0)
		a.AddRequest(1, 2, 1, 0, 0)
		a.Allocate()
		wins := 0
		if a.OutputAssigned(0) == 2 {
			wins++
		}
		if a.OutputAssigned(1) == 2 {
			wins++
		}
		assert.Equal(t, 1, wins, "%s: exactly one of the two conflicting inputs should win output 2", name)
	}
}

func TestAllocators_MaskedOutput_NeverGranted(t *testing.T) {
	for name, a := range allAllocators(t, 4, 4) {
		a.Clear()
		a.MaskOutput(2, true)
		a.AddRequest(0, 2, 1, 0, 0)
		a.Allocate()
		assert.Equal(t, -1, a.OutputAssigned(0), "%s: masked output must not be granted", name)
	}
}

func TestSeparableInputFirst_ReadRequest(t *testing.T) {
	a := NewSeparableInputFirst("round_robin", 2, 2)
	a.AddRequest(0, 1, 7, 5, 0)
	label, ok := a.ReadRequest(0, 1)
	require.True(t, ok)
	assert.Equal(t, 7, label)

	_, ok = a.ReadRequest(0, 0)
	assert.False(t, ok)
}

func TestSeparableInputFirst_HigherInPriWinsOnReadRequest(t *testing.T) {
	a := NewSeparableInputFirst("round_robin", 2, 2)
	a.AddRequest(0, 1, 1, 1, 0)
	a.AddRequest(0, 1, 2, 9, 0)
	label, ok := a.ReadRequest(0, 1)
	require.True(t, ok)
	assert.Equal(t, 2, label)
}

func TestFilterSpeculativeGrants_AnyNonSpecGrants(t *testing.T) {
	specGrants := []int{0, 1} // input 0 -> out 0, input 1 -> out 1
	nonSpecGrants := []int{-1, 2}
	survivors := FilterSpeculativeGrants(FilterAnyNonSpecGrants, specGrants, nonSpecGrants, nil)
	assert.Equal(t, []int{-1, -1}, survivors)
}

func TestFilterSpeculativeGrants_NoNonSpecActivity_SpecSurvives(t *testing.T) {
	specGrants := []int{0, 1}
	nonSpecGrants := []int{-1, -1}
	survivors := FilterSpeculativeGrants(FilterAnyNonSpecGrants, specGrants, nonSpecGrants, nil)
	assert.Equal(t, specGrants, survivors)
}

func TestFilterSpeculativeGrants_ConflNonSpecReqs(t *testing.T) {
	specGrants := []int{2}
	nonSpecGrants := []int{-1}
	nonSpecRequested := []bool{false, false, true}
	survivors := FilterSpeculativeGrants(FilterConflNonSpecReqs, specGrants, nonSpecGrants, nonSpecRequested)
	assert.Equal(t, []int{-1}, survivors)
}

func TestFilterSpeculativeGrants_ConflNonSpecGrants(t *testing.T) {
	specGrants := []int{-1, 3}
	nonSpecGrants := []int{3}
	survivors := FilterSpeculativeGrants(FilterConflNonSpecGrants, specGrants, nonSpecGrants, nil)
	assert.Equal(t, []int{-1, -1}, survivors)
}

func TestParseFilterMode(t *testing.T) {
	for _, s := range []string{"any_nonspec_gnts", "confl_nonspec_reqs", "confl_nonspec_gnts"} {
		_, ok := ParseFilterMode(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseFilterMode("bogus")
	assert.False(t, ok)
}

func TestFactory_UnknownKind_Errors(t *testing.T) {
	_, err := New("bogus", "round_robin", 4, 4, 1)
	assert.Error(t, err)
}

func TestFactory_AllKinds(t *testing.T) {
	kinds := []string{
		"separable_input_first", "separable_output_first",
		"wavefront", "wavefront_rr", "islip", "pim", "loa", "selalloc",
		"select", "maxsize",
	}
	for _, k := range kinds {
		a, err := New(k, "round_robin", 4, 4, 2)
		require.NoError(t, err, k)
		assert.NotNil(t, a, k)
	}
}

func TestFactory_Select_AliasesSelAlloc(t *testing.T) {
	a, err := New("select", "round_robin", 4, 4, 3)
	require.NoError(t, err)
	assert.IsType(t, &SelAlloc{}, a)
}

func TestMaxSize_OutputConflict_HigherPriorityWins(t *testing.T) {
	a := NewMaxSize(4, 4)
	a.Clear()
	a.AddRequest(0, 2, 1, 1, 0)
	a.AddRequest(1, 2, 1, 9, 0)
	a.Allocate()
	assert.Equal(t, -1, a.OutputAssigned(0))
	assert.Equal(t, 2, a.OutputAssigned(1))
}

func TestMaxSize_DisjointRequests_BothGrant(t *testing.T) {
	a := NewMaxSize(4, 4)
	a.Clear()
	a.AddRequest(0, 1, 1, 0, 0)
	a.AddRequest(2, 3, 1, 0, 0)
	a.Allocate()
	assert.Equal(t, 1, a.OutputAssigned(0))
	assert.Equal(t, 3, a.OutputAssigned(2))
}

func TestHierarchical_SingleRequest_Grants(t *testing.T) {
	h := NewHierarchical("round_robin", 2, 2, 2, 2)
	h.Clear()
	h.AddRequest(1, 2, 9, 0, 0)
	h.Allocate()
	assert.Equal(t, 2, h.OutputAssigned(1))
}

func TestHierarchical_Idempotent_EmptyAfterClear(t *testing.T) {
	h := NewHierarchical("round_robin", 2, 2, 2, 2)
	h.Clear()
	h.Allocate()
	for in := 0; in < 4; in++ {
		assert.Equal(t, -1, h.OutputAssigned(in))
	}
}
