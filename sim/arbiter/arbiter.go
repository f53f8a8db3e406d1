// Package arbiter implements the single-resource tie-break policies spec
// §4.4 assigns to one input or output of the router: round-robin, matrix,
// weighted round-robin, and probabilistic. Each policy satisfies the
// Arbiter interface and is idempotent across repeated AddRequest calls
// for the same input within one round (last higher-priority request
// wins) — grounded on the original's consolidated src/arbiters/ tree
// rather than the older, duplicated allocators/ copies (DESIGN NOTES:
// "the target implementation SHOULD consolidate to one set; use the newer
// semantics as authoritative").
package arbiter

// Arbiter resolves contention for a single resource among up to N
// requesting inputs per cycle (spec §4.4).
type Arbiter interface {
	// AddRequest registers (or updates, if input already has a pending
	// request this round) a bid from input for id at priority pri.
	AddRequest(input, id, pri int)

	// Arbitrate returns the winning (input, id, priority), or ok=false if
	// no request was made this round.
	Arbitrate() (input, id, pri int, ok bool)

	// UpdateState commits the last Arbitrate result into the policy's
	// internal fairness state (round-robin pointer, matrix rows/columns,
	// weighted-RR share). Call once per cycle, after Arbitrate, only when
	// the grant was actually consumed.
	UpdateState()

	// Clear resets all pending requests, leaving fairness state intact.
	Clear()
}

type entry struct {
	valid bool
	id    int
	pri   int
}

// supersedes implements the tie-break rule named in spec §4.4: a new
// request beats a held one if its priority is strictly higher, or if
// priorities tie and the new input is closer to ptr in round-robin scan
// order (the distance from (ptr+1) mod n going forward). Grounded on the
// original's RoundRobinArbiter::Supersedes, used by the weighted and
// large-radix round-robin variants as well as plain round-robin.
func supersedes(newInput, newPri, heldInput, heldPri, ptr, n int) bool {
	if newPri != heldPri {
		return newPri > heldPri
	}
	distNew := ((newInput - ptr - 1) % n + n) % n
	distHeld := ((heldInput - ptr - 1) % n + n) % n
	return distNew < distHeld
}
