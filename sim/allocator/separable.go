package allocator

import (
	"github.com/noc-sim/noc-sim/sim/arbiter"
)

// newArb builds one arbiter instance per port, matching the original's
// per-input/per-output MatrixArbiter or RoundRobinArbiter array
// (separable.cpp's _input_arb / _output_arb setup).
func newArb(kind string, count, n int) []arbiter.Arbiter {
	arbs := make([]arbiter.Arbiter, count)
	for i := range arbs {
		a, err := arbiter.New(kind, n)
		if err != nil {
			// arb_type is validated at config load; an unknown kind here
			// is a programmer error, not a runtime condition to recover from.
			panic(err)
		}
		arbs[i] = a
	}
	return arbs
}

// separableBase holds the per-input-arbiter/per-output-arbiter wiring
// shared by the input-first and output-first variants (spec §4.5:
// "separable allocators perform independent input-side and output-side
// arbitration in one of two orders").
type separableBase struct {
	matching
	requestSet
	inputArb  []arbiter.Arbiter // one per input, arbitrates among its outputs
	outputArb []arbiter.Arbiter // one per output, arbitrates among its inputs
}

func newSeparableBase(arbType string, inputs, outputs int) separableBase {
	return separableBase{
		matching:   newMatching(inputs, outputs),
		requestSet: newRequestSet(inputs),
		inputArb:   newArb(arbType, inputs, outputs),
		outputArb:  newArb(arbType, outputs, inputs),
	}
}

func (a *separableBase) Clear()                                  { a.requestSet.clear() }
func (a *separableBase) AddRequest(in, out, label, inPri, outPri int) {
	a.requestSet.add(in, out, label, inPri, outPri)
}
func (a *separableBase) RemoveRequest(in, out, label int) { a.requestSet.remove(in, out, label) }
func (a *separableBase) ReadRequest(in, out int) (int, bool) {
	req, ok := a.requestSet.read(in, out)
	if !ok {
		return -1, false
	}
	return req.Label, true
}

// SeparableInputFirst arbitrates each input among its own candidate
// outputs first, then lets each output arbitrate among the inputs that
// won their input-side round (separable_input_first.cpp).
type SeparableInputFirst struct {
	separableBase
}

// NewSeparableInputFirst builds an input-first separable allocator with
// arbType ("round_robin" or "matrix") arbiters on both sides.
func NewSeparableInputFirst(arbType string, inputs, outputs int) *SeparableInputFirst {
	return &SeparableInputFirst{separableBase: newSeparableBase(arbType, inputs, outputs)}
}

func (a *SeparableInputFirst) Allocate() {
	a.clearMatching()
	for out := 0; out < a.outputs; out++ {
		a.outputArb[out].Clear()
	}

	for in := 0; in < a.inputs; in++ {
		a.inputArb[in].Clear()
		for _, req := range a.forInput(in) {
			if req.Label > -1 && !a.outMask[req.Port] {
				a.inputArb[in].AddRequest(req.Port, req.Label, req.InPri)
			}
		}
		out, label, pri, ok := a.inputArb[in].Arbitrate()
		if ok {
			a.outputArb[out].AddRequest(in, label, pri)
		}
	}

	for out := 0; out < a.outputs; out++ {
		in, _, _, ok := a.outputArb[out].Arbitrate()
		if !ok {
			continue
		}
		a.inMatch[in] = out
		a.outMatch[out] = in
		a.inputArb[in].UpdateState()
		a.outputArb[out].UpdateState()
	}
}

// SeparableOutputFirst lets each output arbitrate among all requesting
// inputs first, then each winning input re-arbitrates among the outputs
// that granted it (separable_output_first.cpp).
type SeparableOutputFirst struct {
	separableBase
}

// NewSeparableOutputFirst builds an output-first separable allocator.
func NewSeparableOutputFirst(arbType string, inputs, outputs int) *SeparableOutputFirst {
	return &SeparableOutputFirst{separableBase: newSeparableBase(arbType, inputs, outputs)}
}

func (a *SeparableOutputFirst) Allocate() {
	a.clearMatching()

	for out := 0; out < a.outputs; out++ {
		a.outputArb[out].Clear()
	}
	for in := 0; in < a.inputs; in++ {
		for _, req := range a.forInput(in) {
			if req.Label > -1 && !a.outMask[req.Port] {
				a.outputArb[req.Port].AddRequest(in, req.Label, req.OutPri)
			}
		}
	}
	for in := 0; in < a.inputs; in++ {
		a.inputArb[in].Clear()
	}

	// Each output picks a provisional winner and forwards it to that
	// input's arbiter, keyed by the output (the input may have won more
	// than one output this way and re-arbitrates below).
	winner := make([]int, a.outputs)
	for out := 0; out < a.outputs; out++ {
		in, _, _, ok := a.outputArb[out].Arbitrate()
		if !ok {
			winner[out] = -1
			continue
		}
		winner[out] = in
		for _, req := range a.forInput(in) {
			if req.Label > -1 && req.Port == out {
				a.inputArb[in].AddRequest(out, req.Label, req.InPri)
				break
			}
		}
	}

	for in := 0; in < a.inputs; in++ {
		out, _, _, ok := a.inputArb[in].Arbitrate()
		if !ok || winner[out] != in {
			continue
		}
		a.inMatch[in] = out
		a.outMatch[out] = in
		a.inputArb[in].UpdateState()
		a.outputArb[out].UpdateState()
	}
}
