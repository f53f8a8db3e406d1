package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlit_Reset(t *testing.T) {
	f := &Flit{ID: 5, PID: 2, Head: true, Dest: 3, Data: "payload"}
	f.Reset()
	assert.Equal(t, Flit{}, *f)
}

func TestFlitPool_NewReturnsZeroedFlit(t *testing.T) {
	p := NewFlitPool()
	f := p.New()
	require.NotNil(t, f)
	assert.Equal(t, 0, f.ID)
	assert.False(t, f.Head)
}

func TestFlitPool_RetireReusesBackingArray(t *testing.T) {
	p := NewFlitPool()
	f1 := p.New()
	f1.ID = 42
	p.Retire(f1)

	f2 := p.New()
	assert.Same(t, f1, f2)
	assert.Equal(t, 0, f2.ID)
}

func TestFlitType_String(t *testing.T) {
	assert.Equal(t, "read_request", ReadRequest.String())
	assert.Equal(t, "write_reply", WriteReply.String())
	assert.Equal(t, "unknown", FlitType(99).String())
}
