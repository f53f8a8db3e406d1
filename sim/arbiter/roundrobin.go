package arbiter

// RoundRobin grants the highest-priority valid request; among equal
// priorities it grants the first one scanning forward from pointer+1,
// wrapping around (spec §4.4). After a grant, the pointer
// advances to the winner so the next round starts past it — this bounds
// waiting to at most N-1 grants elsewhere (P6, spec §8).
type RoundRobin struct {
	n        int
	pointer  int
	requests []entry
	selected int // last Arbitrate winner, or -1
}

// NewRoundRobin creates a RoundRobin arbiter over n inputs.
func NewRoundRobin(n int) *RoundRobin {
	return &RoundRobin{n: n, requests: make([]entry, n), selected: -1}
}

// AddRequest registers a bid for input. Per arbiter idempotence (§4.4),
// a later call for the same input in one round only takes effect if its
// priority is higher than the currently held one.
func (r *RoundRobin) AddRequest(input, id, pri int) {
	if !r.requests[input].valid || pri > r.requests[input].pri {
		r.requests[input] = entry{valid: true, id: id, pri: pri}
	}
}

// Arbitrate returns the valid request with the highest priority, breaking
// ties by scan order starting at (pointer+1) mod n.
func (r *RoundRobin) Arbitrate() (input, id, pri int, ok bool) {
	r.selected = -1
	for i := 0; i < r.n; i++ {
		if !r.requests[i].valid {
			continue
		}
		if r.selected == -1 || supersedes(i, r.requests[i].pri, r.selected, r.requests[r.selected].pri, r.pointer, r.n) {
			r.selected = i
		}
	}
	if r.selected == -1 {
		return -1, -1, -1, false
	}
	e := r.requests[r.selected]
	return r.selected, e.id, e.pri, true
}

// UpdateState advances the pointer to the winner of the last Arbitrate call.
func (r *RoundRobin) UpdateState() {
	if r.selected > -1 {
		r.pointer = r.selected
	}
}

// Clear drops all pending requests; the pointer (fairness state) survives.
func (r *RoundRobin) Clear() {
	for i := range r.requests {
		r.requests[i] = entry{}
	}
}

// Pointer returns the current round-robin pointer, for tests and tracing.
func (r *RoundRobin) Pointer() int { return r.pointer }
