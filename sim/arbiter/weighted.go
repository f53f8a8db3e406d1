package arbiter

// WeightedRoundRobin gives each input a configurable weight; the winner's
// remaining share decrements each grant, and the pointer advances only
// once a share is fully depleted (spec §4.4), so a heavily-weighted input
// wins several consecutive rounds before yielding. Grounded on the
// original's WeightedRRArbiter share-depletion mechanics
// (src/arbiters/weighted_rr_arb.cpp), simplified to the behavior spec
// §4.4 actually names (it omits the original's "improved" bump-the-ignored-
// port variant).
type WeightedRoundRobin struct {
	n        int
	pointer  int
	weight   []int
	share    []int
	requests []entry
	selected int
}

// NewWeightedRoundRobin creates a WeightedRoundRobin arbiter over n
// inputs with the given per-input weights (weights[i] must be >= 1).
func NewWeightedRoundRobin(weights []int) *WeightedRoundRobin {
	n := len(weights)
	w := &WeightedRoundRobin{
		n:        n,
		weight:   append([]int(nil), weights...),
		share:    make([]int, n),
		requests: make([]entry, n),
		selected: -1,
	}
	copy(w.share, w.weight)
	return w
}

// AddRequest registers a bid for input.
func (w *WeightedRoundRobin) AddRequest(input, id, pri int) {
	if !w.requests[input].valid || pri > w.requests[input].pri {
		w.requests[input] = entry{valid: true, id: id, pri: pri}
	}
}

// Arbitrate picks the highest priority, breaking ties by scan order from
// pointer+1, same as plain round-robin; the weighting is entirely
// expressed in how the pointer advances.
func (w *WeightedRoundRobin) Arbitrate() (input, id, pri int, ok bool) {
	w.selected = -1
	for i := 0; i < w.n; i++ {
		if !w.requests[i].valid {
			continue
		}
		if w.selected == -1 || supersedes(i, w.requests[i].pri, w.selected, w.requests[w.selected].pri, w.pointer, w.n) {
			w.selected = i
		}
	}
	if w.selected == -1 {
		return -1, -1, -1, false
	}
	e := w.requests[w.selected]
	return w.selected, e.id, e.pri, true
}

// UpdateState decrements the winner's remaining share; only when that
// share reaches zero does the pointer advance past the winner (refilled
// to its full weight for the next time it is reached). Until then the
// pointer sits just before the winner, so the next scan starts at it.
func (w *WeightedRoundRobin) UpdateState() {
	if w.selected < 0 {
		return
	}
	w.share[w.selected]--
	if w.share[w.selected] <= 0 {
		w.share[w.selected] = w.weight[w.selected]
		w.pointer = w.selected
	} else {
		w.pointer = (w.selected - 1 + w.n) % w.n
	}
}

// Clear drops all pending requests; weights and shares survive.
func (w *WeightedRoundRobin) Clear() {
	for i := range w.requests {
		w.requests[i] = entry{}
	}
}
