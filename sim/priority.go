package sim

import "math"

// PriorityPolicy recomputes a VC's arbitration priority whenever its head
// flit changes (spec §4.2). Higher scores win ties in the arbiters.
type PriorityPolicy interface {
	Compute(vc *VC, f *Flit) int
}

// NonePriority assigns every VC the same constant priority, so arbiters
// fall back entirely on their own tie-break rule (round-robin pointer,
// matrix row/column).
type NonePriority struct{}

func (NonePriority) Compute(*VC, *Flit) int { return 0 }

// LocalAgePriority favors older flits: priority = MaxInt32 - injection_time,
// so a flit injected earlier always outranks one injected later (spec §4.2 (b)).
type LocalAgePriority struct{}

func (LocalAgePriority) Compute(_ *VC, f *Flit) int {
	return math.MaxInt32 - f.Time
}

// QueueLengthPriority favors the VC with the most buffered flits,
// biasing service toward backed-up inputs (spec §4.2 (c)).
type QueueLengthPriority struct{}

func (QueueLengthPriority) Compute(vc *VC, _ *Flit) int {
	return vc.Size()
}

// HopCountPriority favors flits that have traveled further, reducing
// the odds a nearly-arrived flit stalls behind a freshly injected one
// (spec §4.2 (d)).
type HopCountPriority struct{}

func (HopCountPriority) Compute(_ *VC, f *Flit) int {
	return f.Hops
}

// OtherPriority passes through whatever priority the flit itself
// carries, letting an external traffic generator or QoS class encode
// priority directly (spec §4.2 (e)).
type OtherPriority struct{}

func (OtherPriority) Compute(_ *VC, f *Flit) int {
	return f.Pri
}

// NewPriorityPolicy resolves spec §6's `priority` config value to a
// concrete policy. An empty name selects NonePriority; "age" is an alias
// for "local_age".
func NewPriorityPolicy(name string) (PriorityPolicy, error) {
	switch name {
	case "", "none":
		return NonePriority{}, nil
	case "age", "local_age":
		return LocalAgePriority{}, nil
	case "queue_length":
		return QueueLengthPriority{}, nil
	case "hop_count":
		return HopCountPriority{}, nil
	case "other":
		return OtherPriority{}, nil
	default:
		return nil, invariantf(-1, -1, -1, -1, "unknown priority policy %q", name)
	}
}
