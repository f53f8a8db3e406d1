package sim

// Buffer owns one input port's VCs plus an optional shared overflow pool
// (spec §3). Per-VC occupancy is bounded by vcSize, with up to
// sharedSize additional slots shared across every VC on this input;
// Full reports true only once both limits are exhausted (spec §4.2).
type Buffer struct {
	vcs []*VC

	vcSize      int
	sharedSize  int
	sharedCount int
}

// NewBuffer creates a Buffer with numVCs virtual channels, each holding up
// to vcSize flits before spilling into a sharedSize-slot shared pool.
func NewBuffer(numVCs, vcSize, sharedSize int) *Buffer {
	b := &Buffer{
		vcs:        make([]*VC, numVCs),
		vcSize:     vcSize,
		sharedSize: sharedSize,
	}
	for i := range b.vcs {
		b.vcs[i] = NewVC(i)
	}
	return b
}

// NumVCs returns the number of virtual channels on this input.
func (b *Buffer) NumVCs() int { return len(b.vcs) }

// VC returns the VC at index vc.
func (b *Buffer) VC(vc int) *VC { return b.vcs[vc] }

// AddFlit enqueues f into VC vc, using a shared-pool slot if the VC's own
// allotment is exhausted. Returns false (not a fatal error — the caller
// decides what overflow means) if both the VC and the shared pool are
// full; the spec (§4.6) treats this as a fatal credit-protocol bug upstream,
// since credits should have prevented it.
func (b *Buffer) AddFlit(routerID, input, vc int, f *Flit) (bool, error) {
	v := b.vcs[vc]
	if v.Size() < b.vcSize {
		if err := v.AddFlit(routerID, input, f); err != nil {
			return false, err
		}
		return true, nil
	}
	if b.sharedCount < b.sharedSize {
		if err := v.AddFlit(routerID, input, f); err != nil {
			return false, err
		}
		b.sharedCount++
		return true, nil
	}
	return false, nil
}

// RemoveFlit dequeues and returns the head-of-line flit of VC vc,
// releasing a shared-pool slot if the VC was over its own allotment.
func (b *Buffer) RemoveFlit(vc int) *Flit {
	v := b.vcs[vc]
	overAllotment := v.Size() > b.vcSize
	f := v.RemoveFlit()
	if overAllotment {
		b.sharedCount--
	}
	return f
}

// Full reports whether VC vc is at its per-VC limit and the shared pool
// is exhausted (spec §3: "per-VC occupancy ≤ vc_size + shared_size").
func (b *Buffer) Full(vc int) bool {
	return b.sharedCount >= b.sharedSize && b.vcs[vc].Size() >= b.vcSize
}

// Empty reports whether VC vc holds no flits.
func (b *Buffer) Empty(vc int) bool { return b.vcs[vc].Empty() }

// FrontFlit returns the head-of-line flit of VC vc, or nil.
func (b *Buffer) FrontFlit(vc int) *Flit { return b.vcs[vc].FrontFlit() }

// State returns VC vc's current state.
func (b *Buffer) State(vc int) VCState { return b.vcs[vc].State() }

// StateTime returns the number of cycles VC vc has spent in its current state.
func (b *Buffer) StateTime(vc int) int { return b.vcs[vc].StateTime() }

// SetState transitions VC vc.
func (b *Buffer) SetState(vc int, s VCState) { b.vcs[vc].SetState(s) }

// RouteSet returns VC vc's cached routing result.
func (b *Buffer) RouteSet(vc int) *OutputSet { return b.vcs[vc].RouteSet() }

// SetOutput records VC vc's (port, vc) assignment.
func (b *Buffer) SetOutput(vc, outPort, outVC int) { b.vcs[vc].SetOutput(outPort, outVC) }

// Route invokes the routing function on VC vc's head flit, forwarding to VC.Route.
func (b *Buffer) Route(vc int, rf RoutingFunc, router *Router, f *Flit, inChannel int) *OutputSet {
	return b.vcs[vc].Route(rf, router, f, inChannel)
}

// AdvanceTime advances the time-in-state counter of every VC on this
// input, once per tick (spec §4.2).
func (b *Buffer) AdvanceTime() {
	for _, v := range b.vcs {
		v.AdvanceTime()
	}
}
