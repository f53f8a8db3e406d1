// Package allocator implements the two-sided (input x output) matching
// policies spec §4.5 uses for both VC allocation and switch allocation:
// separable (input-first / output-first), wavefront, iSLIP, PIM, LOA,
// SelAlloc, and a two-level hierarchical allocator. Grounded on the
// original's src/allocators/ tree (allocator.hpp/.cpp, separable*.cpp,
// wavefront.cpp, rr_wavefront.cpp, islip.hpp, pim.hpp, loa.hpp,
// selalloc.hpp, HierAllocator.cpp), reusing sim/arbiter for the
// single-resource tie-break each stage needs.
package allocator

// Request is a single (output, label, in_pri, out_pri) bid recorded by
// AddRequest — label carries the caller's payload (e.g. a VC or flit id)
// through Allocate unchanged, mirroring the original's sRequest.
type Request struct {
	Port     int
	Label    int
	InPri    int
	OutPri   int
	Rejected bool // carried with the request; no allocator in this package sets it
}

// Allocator resolves a bipartite matching between inputs and outputs
// (spec §4.5). One instance serves either VC allocation (inputs/outputs
// are VCs) or switch allocation (inputs/outputs are physical ports),
// depending on what the caller wires it to.
type Allocator interface {
	// Clear drops all pending requests for a fresh cycle.
	Clear()

	// AddRequest registers a bid from in for out, carrying label and
	// the input- and output-side priorities used to break ties.
	AddRequest(in, out, label, inPri, outPri int)

	// RemoveRequest withdraws a previously added bid with the same
	// label (used when a speculative grant is reneged, spec §4.5).
	RemoveRequest(in, out, label int)

	// ReadRequest returns the (label, ok) of the highest-in_pri
	// pending request from in to out, if any.
	ReadRequest(in, out int) (label int, ok bool)

	// Allocate computes the matching for this cycle; results are read
	// back via OutputAssigned / InputAssigned.
	Allocate()

	// OutputAssigned returns the output matched to in, or -1.
	OutputAssigned(in int) int

	// InputAssigned returns the input matched to out, or -1.
	InputAssigned(out int) int

	// MaskOutput excludes out from the matching (mask=true) until it is
	// called again with mask=false; Clear does not reset the mask.
	MaskOutput(out int, mask bool)
}

// matching holds the common in/out match bookkeeping every concrete
// allocator embeds, mirroring the original Allocator base class's
// _inmatch/_outmatch/_outmask arrays.
type matching struct {
	inputs, outputs int
	inMatch         []int
	outMatch        []int
	outMask         []bool
}

func newMatching(inputs, outputs int) matching {
	m := matching{inputs: inputs, outputs: outputs,
		inMatch: make([]int, inputs), outMatch: make([]int, outputs),
		outMask: make([]bool, outputs)}
	m.clearMatching()
	return m
}

func (m *matching) clearMatching() {
	for i := range m.inMatch {
		m.inMatch[i] = -1
	}
	for i := range m.outMatch {
		m.outMatch[i] = -1
	}
}

func (m *matching) OutputAssigned(in int) int     { return m.inMatch[in] }
func (m *matching) InputAssigned(out int) int     { return m.outMatch[out] }
func (m *matching) MaskOutput(out int, mask bool) { m.outMask[out] = mask }
