package arbiter

import "fmt"

// New builds an Arbiter by name, matching spec §6's vc_alloc_arb_type /
// sw_alloc_arb_type options ("round_robin" / "matrix"). Weighted and
// probabilistic arbiters are constructed directly (NewWeightedRoundRobin,
// NewProbabilistic) since they need extra parameters (weights, an RNG)
// the flat two-value config surface doesn't carry.
func New(kind string, n int) (Arbiter, error) {
	switch kind {
	case "round_robin":
		return NewRoundRobin(n), nil
	case "matrix":
		return NewMatrix(n), nil
	default:
		return nil, fmt.Errorf("arbiter: unknown type %q", kind)
	}
}
