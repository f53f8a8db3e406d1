package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_LatencyOneDeliversImmediately(t *testing.T) {
	c := NewChannel[int](1)
	v := 42
	c.Send(&v)
	assert.Equal(t, &v, c.Receive())
}

func TestChannel_LatencyDelaysDelivery(t *testing.T) {
	c := NewChannel[int](3)

	// GIVEN latency 3, the first two Receives drain the pre-seeded nils
	// before the sent value ever surfaces.
	v := 7
	c.Send(&v)
	assert.Nil(t, c.Receive())
	c.Send(nil)
	assert.Nil(t, c.Receive())
	c.Send(nil)
	assert.Equal(t, &v, c.Receive())
}

func TestChannel_PeekDoesNotPop(t *testing.T) {
	c := NewChannel[int](1)
	v := 9
	c.Send(&v)
	assert.Equal(t, &v, c.Peek())
	assert.Equal(t, &v, c.Peek())
	assert.Equal(t, &v, c.Receive())
}

func TestChannel_ReceiveOnEmptyQueueReturnsNil(t *testing.T) {
	c := NewChannel[int](1)
	assert.Nil(t, c.Receive())
}

func TestFlitChannel_InUseAndActivityCounters(t *testing.T) {
	fc := NewFlitChannel(1)
	assert.False(t, fc.InUse())

	f := &Flit{Type: ReadRequest}
	fc.SendFlit(f)
	assert.True(t, fc.InUse())
	assert.Equal(t, int64(1), fc.ActiveCycles(ReadRequest))

	fc.Receive()
	fc.SendFlit(nil)
	assert.False(t, fc.InUse())
	assert.Equal(t, int64(1), fc.IdleCycles())
}

func TestCreditChannel_RoundTrips(t *testing.T) {
	cc := NewCreditChannel(1)
	c := &Credit{ID: 3}
	cc.Send(c)
	assert.Same(t, c, cc.Receive())
}
