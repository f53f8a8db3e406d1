package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputSet_AddAndEntries(t *testing.T) {
	o := NewOutputSet(4)
	assert.True(t, o.OutputEmpty(1))

	o.Add(1, 2, 5)
	assert.False(t, o.OutputEmpty(1))
	entries := o.Entries(1)
	assert.Len(t, entries, 1)
	assert.Equal(t, OutputSetEntry{OutputPort: 1, VCStart: 2, VCEnd: 2, Pri: 5}, entries[0])
}

func TestOutputSet_AddRangeAndNumVCs(t *testing.T) {
	o := NewOutputSet(2)
	o.AddRange(0, 0, 3, 1)
	assert.Equal(t, 4, o.NumVCs(0))
}

func TestOutputSet_ClearResetsAllPorts(t *testing.T) {
	o := NewOutputSet(2)
	o.Add(0, 0, 1)
	o.Add(1, 0, 1)
	o.Clear()
	assert.True(t, o.OutputEmpty(0))
	assert.True(t, o.OutputEmpty(1))
}

func TestOutputSet_AllPorts(t *testing.T) {
	o := NewOutputSet(3)
	o.Add(0, 0, 1)
	o.Add(2, 1, 1)
	assert.ElementsMatch(t, []int{0, 2}, o.AllPorts())
}
