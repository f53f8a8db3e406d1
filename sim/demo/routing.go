package demo

import "github.com/noc-sim/noc-sim/sim"

// RoutingName and TopologyName are the config values BuildRing's routing
// function is registered under (spec §6, routing_function/topology
// joined via sim.RoutingFuncKey).
const (
	RoutingName  = "dor"
	TopologyName = "ring"
)

// RegisterRouting installs the ring's routing function into ctx under
// sim.RoutingFuncKey(RoutingName, TopologyName). Safe to call more than
// once; later calls simply overwrite the same key.
func RegisterRouting(ctx *sim.SimulationContext) {
	ctx.RoutingFuncs[sim.RoutingFuncKey(RoutingName, TopologyName)] = dorRing
}

// dorRing is the ring's only legal routing decision: eject locally once
// the flit has arrived at its destination router, otherwise forward it
// one more hop around the ring. Every VC is a legal candidate, letting
// the VC allocator pick among whichever downstream VCs are free.
func dorRing(router *sim.Router, flit *sim.Flit, inChannel int, out *sim.OutputSet, inject bool) {
	out.Clear()
	numVCs := router.NumVCs()
	if flit.Dest == router.ID() {
		out.AddRange(LocalPort, 0, numVCs-1, 0)
		return
	}
	out.AddRange(RingPort, 0, numVCs-1, 0)
}
