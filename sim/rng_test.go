package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSubsystemReturnsSameInstance(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	a := p.ForSubsystem(SubsystemArbiter)
	b := p.ForSubsystem(SubsystemArbiter)
	assert.Same(t, a, b)
}

func TestPartitionedRNG_DifferentSubsystemsDiverge(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	a := p.ForSubsystem(SubsystemArbiter)
	b := p.ForSubsystem("other")
	assert.NotEqual(t, a.Int63(), b.Int63())
}

func TestPartitionedRNG_DemoTrafficUsesMasterSeedDirectly(t *testing.T) {
	key := NewSimulationKey(7)
	p := NewPartitionedRNG(key)
	rng := p.ForSubsystem(SubsystemDemoTraffic)

	want := rand.New(rand.NewSource(int64(key)))
	assert.Equal(t, want.Int63(), rng.Int63())
}

func TestPartitionedRNG_SameSeedIsDeterministicAcrossInstances(t *testing.T) {
	p1 := NewPartitionedRNG(NewSimulationKey(99))
	p2 := NewPartitionedRNG(NewSimulationKey(99))
	assert.Equal(t, p1.ForSubsystem(SubsystemArbiter).Int63(), p2.ForSubsystem(SubsystemArbiter).Int63())
}

func TestSubsystemInstance_FormatsID(t *testing.T) {
	assert.Equal(t, "instance_3", SubsystemInstance(3))
}
