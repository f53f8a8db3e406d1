package sim

// BufferState mirrors the *downstream* Buffer from the upstream router's
// point of view, one per router output (spec §3, §4.3). It tracks, per
// downstream VC, a credit counter seeded at vcSize and an in-use flag set
// at VA grant and cleared when the tail departs.
type BufferState struct {
	vcSize int

	credits []int // per-VC remaining downstream slots
	inUse   []bool
}

// NewBufferState creates a BufferState for numVCs downstream VCs, each
// starting with vcSize credits (spec §4.3: "credit count initialized to vc_size").
func NewBufferState(numVCs, vcSize int) *BufferState {
	bs := &BufferState{
		vcSize:  vcSize,
		credits: make([]int, numVCs),
		inUse:   make([]bool, numVCs),
	}
	for i := range bs.credits {
		bs.credits[i] = vcSize
	}
	return bs
}

// NumVCs returns the number of downstream VCs tracked.
func (bs *BufferState) NumVCs() int { return len(bs.credits) }

// IsAvailableFor reports whether downstream VC vc is not currently held by
// any upstream input (spec §3: "a VC is available iff not held by any
// upstream input").
func (bs *BufferState) IsAvailableFor(vc int) bool {
	return !bs.inUse[vc]
}

// HasCredit reports whether downstream VC vc has at least one free slot.
func (bs *BufferState) HasCredit(vc int) bool {
	return bs.credits[vc] > 0
}

// Credits returns the current credit count for downstream VC vc.
func (bs *BufferState) Credits(vc int) int {
	return bs.credits[vc]
}

// Occupancy returns the number of downstream slots currently in use for
// VC vc (vc_size minus remaining credits), for introspection/statistics
// (spec §4.6's GetCredit-style reporting helpers).
func (bs *BufferState) Occupancy(vc int) int {
	return bs.vcSize - bs.credits[vc]
}

// TakeBuffer marks downstream VC vc as held by an upstream input, called
// at VA grant (spec §4.3).
func (bs *BufferState) TakeBuffer(vc int) {
	bs.inUse[vc] = true
}

// SendingFlit decrements the credit count for the VC f was assigned to,
// called whenever a flit departs into this output (spec §4.3). Clears the
// in-use flag when the flit is a tail, since the downstream VC is no
// longer reserved for this packet once it finishes arriving.
func (bs *BufferState) SendingFlit(f *Flit, vc int) {
	bs.credits[vc]--
	if f.Tail {
		bs.inUse[vc] = false
	}
}

// ProcessCredit applies an incoming Credit, incrementing the credit count
// for every VC it frees (spec §4.3). The invariant
// credits[v] + in_flight_for_v == vc_size (P1, §8) is restored exactly
// when every in-flight flit for v has either arrived downstream or been
// accounted for by a prior ProcessCredit call.
func (bs *BufferState) ProcessCredit(c *Credit) {
	for _, vc := range c.VCs {
		bs.credits[vc]++
		if bs.credits[vc] > bs.vcSize {
			bs.credits[vc] = bs.vcSize
		}
	}
}
