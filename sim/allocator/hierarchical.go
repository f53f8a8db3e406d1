package allocator

import "github.com/noc-sim/noc-sim/sim/arbiter"

// Hierarchical is a two-level allocator for radix-reducing crossbars:
// each input/output port is grouped into leaf x root, and arbitration
// happens leaf-then-root on both sides. The leaf arbiters span the full
// opposite port count; only the root arbiters are bounded to leaf size.
// Grounded on the original's HierAllocator.cpp (HierArbiter-based
// two-level input-then-output arbitration), simplified to a single flat
// leaf/root pair of arbType arbiters per side rather than the original's nested HierArbiter
// type (no .cpp body for HierArbiter itself was retrieved).
type Hierarchical struct {
	matching
	requestSet
	inputLeaf, inputRoot   int
	outputLeaf, outputRoot int
	inputLeafArb           []arbiter.Arbiter // one per input, picks among its candidate outputs
	inputRootArb           []arbiter.Arbiter // one per input-root group
	outputLeafArb          []arbiter.Arbiter // one per output, picks among its candidate inputs
	outputRootArb          []arbiter.Arbiter // one per output-root group
}

// NewHierarchical builds a hierarchical allocator over
// inputLeaf*inputRoot inputs and outputLeaf*outputRoot outputs, using
// arbType arbiters at every level.
func NewHierarchical(arbType string, inputLeaf, inputRoot, outputLeaf, outputRoot int) *Hierarchical {
	inputs := inputLeaf * inputRoot
	outputs := outputLeaf * outputRoot
	return &Hierarchical{
		matching:      newMatching(inputs, outputs),
		requestSet:    newRequestSet(inputs),
		inputLeaf:     inputLeaf,
		inputRoot:     inputRoot,
		outputLeaf:    outputLeaf,
		outputRoot:    outputRoot,
		inputLeafArb:  newArb(arbType, inputs, outputs),
		inputRootArb:  newArb(arbType, inputRoot, inputLeaf),
		outputLeafArb: newArb(arbType, outputs, inputs),
		outputRootArb: newArb(arbType, outputRoot, outputLeaf),
	}
}

func (a *Hierarchical) Clear()                                       { a.requestSet.clear() }
func (a *Hierarchical) AddRequest(in, out, label, inPri, outPri int) { a.requestSet.add(in, out, label, inPri, outPri) }
func (a *Hierarchical) RemoveRequest(in, out, label int)             { a.requestSet.remove(in, out, label) }
func (a *Hierarchical) ReadRequest(in, out int) (int, bool) {
	req, ok := a.requestSet.read(in, out)
	if !ok {
		return -1, false
	}
	return req.Label, true
}

// Allocate runs leaf-level arbitration on the input side, rolls winners
// up to root-level arbitration, then mirrors the same two levels on the
// output side before committing the final match — the same
// input-then-output ordering as separable_input_first, just with an
// extra level on each side.
func (a *Hierarchical) Allocate() {
	a.clearMatching()

	for in := 0; in < a.inputs; in++ {
		a.inputLeafArb[in].Clear()
		for _, req := range a.forInput(in) {
			if req.Label > -1 && !a.outMask[req.Port] {
				a.inputLeafArb[in].AddRequest(req.Port, req.Label, req.InPri)
			}
		}
	}
	for g := range a.inputRootArb {
		a.inputRootArb[g].Clear()
	}

	leafWinner := make([]int, a.inputs) // chosen output per input, or -1
	for in := 0; in < a.inputs; in++ {
		out, label, pri, ok := a.inputLeafArb[in].Arbitrate()
		leafWinner[in] = -1
		if !ok {
			continue
		}
		leafWinner[in] = out
		rootGroup := in / a.inputLeaf
		a.inputRootArb[rootGroup].AddRequest(in%a.inputLeaf, label, pri)
	}

	for out := 0; out < a.outputs; out++ {
		a.outputLeafArb[out].Clear()
	}
	for g := range a.outputRootArb {
		a.outputRootArb[g].Clear()
	}

	for g, arb := range a.inputRootArb {
		leafIdx, label, pri, ok := arb.Arbitrate()
		if !ok {
			continue
		}
		in := g*a.inputLeaf + leafIdx
		out := leafWinner[in]
		a.outputLeafArb[out].AddRequest(in, label, pri)
	}

	outLeafWinner := make([]int, a.outputs)
	for out := 0; out < a.outputs; out++ {
		in, label, pri, ok := a.outputLeafArb[out].Arbitrate()
		outLeafWinner[out] = -1
		if !ok {
			continue
		}
		outLeafWinner[out] = in
		rootGroup := out / a.outputLeaf
		a.outputRootArb[rootGroup].AddRequest(out%a.outputLeaf, label, pri)
	}

	for g, arb := range a.outputRootArb {
		leafIdx, _, _, ok := arb.Arbitrate()
		if !ok {
			continue
		}
		out := g*a.outputLeaf + leafIdx
		in := outLeafWinner[out]
		if in == -1 || a.inMatch[in] != -1 || a.outMatch[out] != -1 {
			continue
		}
		a.inMatch[in] = out
		a.outMatch[out] = in
		a.inputLeafArb[in].UpdateState()
		a.outputLeafArb[out].UpdateState()
		a.inputRootArb[in/a.inputLeaf].UpdateState()
		a.outputRootArb[out/a.outputLeaf].UpdateState()
	}
}
