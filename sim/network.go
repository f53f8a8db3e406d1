package sim

// Network wires a set of Routers together with injection/ejection ports
// and drives them through the three-phase tick, mirroring the original's
// Network class (src/networks/network.{hpp,cpp}). Topology-specific
// construction (which router connects to which) lives in sim/demo; this
// type only owns the generic tick/IO plumbing spec §4.6 describes.
type Network struct {
	ctx *SimulationContext

	routers []*Router

	inject     []*FlitChannel
	injectCred []*CreditChannel
	eject      []*FlitChannel
	ejectCred  []*CreditChannel

	chans      []*FlitChannel
	chanUse    []int64
	chanCycles int64

	cycle int64
}

// NewNetwork creates an empty Network with numSources injection ports
// and numDests ejection ports, ready for AddRouter/SetInjectChannel/
// SetEjectChannel calls from the topology builder.
func NewNetwork(ctx *SimulationContext, numSources, numDests int) *Network {
	return &Network{
		ctx:        ctx,
		inject:     make([]*FlitChannel, numSources),
		injectCred: make([]*CreditChannel, numSources),
		eject:      make([]*FlitChannel, numDests),
		ejectCred:  make([]*CreditChannel, numDests),
	}
}

// AddRouter registers a router with the network for the tick loop.
func (n *Network) AddRouter(r *Router) { n.routers = append(n.routers, r) }

// Routers returns every router registered with this network.
func (n *Network) Routers() []*Router { return n.routers }

// NumRouters returns the number of registered routers.
func (n *Network) NumRouters() int { return len(n.routers) }

// NumSources returns the number of injection ports.
func (n *Network) NumSources() int { return len(n.inject) }

// NumDests returns the number of ejection ports.
func (n *Network) NumDests() int { return len(n.eject) }

// SetInjectChannel registers the FlitChannel/CreditChannel pair for
// injection port source. fc/cc must be the same objects wired as the
// corresponding router's input channel via AddInputChannel, so that one
// WriteFlit/ReadCredit pairs exactly with the router's one Receive/Send
// per tick.
func (n *Network) SetInjectChannel(source int, fc *FlitChannel, cc *CreditChannel) {
	n.inject[source] = fc
	n.injectCred[source] = cc
}

// SetEjectChannel registers the FlitChannel/CreditChannel pair for
// ejection port dest, symmetric to SetInjectChannel.
func (n *Network) SetEjectChannel(dest int, fc *FlitChannel, cc *CreditChannel) {
	n.eject[dest] = fc
	n.ejectCred[dest] = cc
}

// AddChannel registers an inter-router channel purely for
// ChannelUtilization tracking.
func (n *Network) AddChannel(fc *FlitChannel) {
	n.chans = append(n.chans, fc)
	n.chanUse = append(n.chanUse, 0)
}

// ReadInputs runs phase 1 of the tick across every router.
func (n *Network) ReadInputs() error {
	for _, r := range n.routers {
		if err := r.ReadInputs(); err != nil {
			return err
		}
	}
	return nil
}

// InternalStep runs phase 2 of the tick across every router.
func (n *Network) InternalStep() error {
	for _, r := range n.routers {
		if err := r.InternalStep(); err != nil {
			return err
		}
	}
	return nil
}

// WriteOutputs runs phase 3 of the tick across every router and updates
// per-channel utilization counters.
func (n *Network) WriteOutputs() {
	for _, r := range n.routers {
		r.WriteOutputs()
	}
	for i, fc := range n.chans {
		if fc.InUse() {
			n.chanUse[i]++
		}
	}
	n.chanCycles++
}

// Tick advances the whole network by one cycle: ReadInputs, then
// InternalStep, then WriteOutputs. The caller (a traffic manager) must
// already have issued at most one WriteFlit and one WriteCredit per
// source/dest before calling Tick, and at most one ReadFlit/ReadCredit
// per source/dest after, to respect Channel's one-Send-one-Receive-per-
// tick contract (spec §4.1).
func (n *Network) Tick() error {
	if err := n.ReadInputs(); err != nil {
		return err
	}
	if err := n.InternalStep(); err != nil {
		return err
	}
	n.WriteOutputs()
	n.cycle++
	return nil
}

// Cycle returns the number of ticks this network has run.
func (n *Network) Cycle() int64 { return n.cycle }

// WriteFlit injects f at source, heading into the network.
func (n *Network) WriteFlit(f *Flit, source int) {
	n.inject[source].SendFlit(f)
}

// ReadFlit ejects and returns the front flit at dest, or nil.
func (n *Network) ReadFlit(dest int) *Flit {
	return n.eject[dest].Receive()
}

// PeekFlit returns the front flit at dest without consuming it.
func (n *Network) PeekFlit(dest int) *Flit {
	return n.eject[dest].Peek()
}

// WriteCredit acknowledges consumption of an ejected flit's VC back
// toward the egress-side router, called explicitly by the traffic
// manager once it has consumed a ReadFlit result (the original's
// Network::WriteCredit is likewise driven by the external traffic
// manager, not synthesized automatically).
func (n *Network) WriteCredit(c *Credit, dest int) {
	n.ejectCred[dest].Send(c)
}

// ReadCredit returns the next credit freed on injection port source, or
// nil, letting the traffic manager mirror a BufferState for injection
// throttling.
func (n *Network) ReadCredit(source int) *Credit {
	return n.injectCred[source].Receive()
}

// PeekCredit returns the next credit on injection port source without consuming it.
func (n *Network) PeekCredit(source int) *Credit {
	return n.injectCred[source].Peek()
}

// OutChannelFault marks routerID's output port as faulty or healthy.
func (n *Network) OutChannelFault(routerID, port int, fault bool) {
	n.routers[routerID].SetOutputFault(port, fault)
}

// ChannelUtilization returns the fraction of observed cycles
// inter-router channel i carried a real flit.
func (n *Network) ChannelUtilization(i int) float64 {
	if n.chanCycles == 0 {
		return 0
	}
	return float64(n.chanUse[i]) / float64(n.chanCycles)
}

// Capacity returns the nominal per-channel capacity (flits/cycle) the
// topology was built for; every channel here is single-flit-per-cycle.
func (n *Network) Capacity() float64 { return 1.0 }
