// Package demo builds a minimal unidirectional ring topology, a
// dimension-order routing function for it, and a synthetic traffic
// generator, used only by the CLI and integration tests — the core
// router/network/allocator machinery in package sim has no dependency on
// any particular topology (spec §1, "topology ... external collaborator").
//
// The ring's routing function offers every VC on every hop and has no
// dateline, so the channel dependency graph is cyclic: once every ring
// buffer fills, traffic deadlocks. Light loads such as spec scenario 1's
// single ping do not reach that point.
package demo

import (
	"fmt"

	"github.com/noc-sim/noc-sim/sim"
)

const (
	// RingPort is the output/input port index carrying traffic around the
	// ring to/from the neighboring router.
	RingPort = 0
	// LocalPort is the port index used for injection (input) and
	// ejection (output) at each router.
	LocalPort = 1
)

// ringChannelLatency is the fixed per-hop wire delay used for both the
// inter-router and the local injection/ejection channels.
const ringChannelLatency = 1

// BuildRing constructs a numRouters-router unidirectional ring: router i
// forwards ring traffic to router (i+1)%numRouters, and each router has
// one local injection source and one local ejection sink (so
// Network.NumSources() == Network.NumDests() == numRouters). Registers
// the ring's routing function into ctx before building any router, since
// Router binds its RoutingFunc at construction.
func BuildRing(ctx *sim.SimulationContext, numRouters int) (*sim.Network, error) {
	if numRouters < 2 {
		return nil, fmt.Errorf("demo: a ring needs at least 2 routers, got %d", numRouters)
	}
	RegisterRouting(ctx)
	rf, err := ctx.LookupRoutingFunc()
	if err != nil {
		return nil, err
	}

	net := sim.NewNetwork(ctx, numRouters, numRouters)
	routers := make([]*sim.Router, numRouters)
	for i := 0; i < numRouters; i++ {
		r, err := sim.NewRouter(ctx, i, 2, 2, rf)
		if err != nil {
			return nil, err
		}
		routers[i] = r
		net.AddRouter(r)
	}

	for i := 0; i < numRouters; i++ {
		next := (i + 1) % numRouters
		fc := sim.NewFlitChannel(ringChannelLatency)
		fc.SourceRouter, fc.SinkRouter = i, next
		cc := sim.NewCreditChannel(ringChannelLatency)
		routers[i].AddOutputChannel(RingPort, fc, cc)
		routers[next].AddInputChannel(RingPort, fc, cc)
		net.AddChannel(fc)
	}

	for i := 0; i < numRouters; i++ {
		injFC := sim.NewFlitChannel(ringChannelLatency)
		injCC := sim.NewCreditChannel(ringChannelLatency)
		routers[i].AddInputChannel(LocalPort, injFC, injCC)
		net.SetInjectChannel(i, injFC, injCC)

		ejFC := sim.NewFlitChannel(ringChannelLatency)
		ejCC := sim.NewCreditChannel(ringChannelLatency)
		routers[i].AddOutputChannel(LocalPort, ejFC, ejCC)
		net.SetEjectChannel(i, ejFC, ejCC)
	}

	return net, nil
}
