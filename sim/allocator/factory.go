package allocator

import "fmt"

// New builds an Allocator by name and arbiter kind, matching spec §6's
// vc_allocator / sw_allocator options. iters controls the round budget
// for islip, pim and selalloc/select and is ignored by the rest (loa
// makes a single pass). "select" is spec §6's documented name for the
// SelAlloc option; "selalloc" is accepted as well since it matches the
// type name. Grounded on the original's Allocator::NewAllocator factory
// (allocator.cpp).
func New(kind, arbType string, inputs, outputs, iters int) (Allocator, error) {
	switch kind {
	case "separable_input_first":
		return NewSeparableInputFirst(arbType, inputs, outputs), nil
	case "separable_output_first":
		return NewSeparableOutputFirst(arbType, inputs, outputs), nil
	case "wavefront":
		return NewWavefront(inputs, outputs), nil
	case "wavefront_rr", "fair_wavefront":
		return NewRRWavefront(inputs, outputs), nil
	case "islip":
		return NewISlip(inputs, outputs, iters), nil
	case "pim":
		return NewPIM(inputs, outputs, iters), nil
	case "loa":
		return NewLOA(inputs, outputs), nil
	case "selalloc", "select":
		return NewSelAlloc(inputs, outputs, iters), nil
	case "maxsize":
		return NewMaxSize(inputs, outputs), nil
	default:
		return nil, fmt.Errorf("allocator: unknown type %q", kind)
	}
}
