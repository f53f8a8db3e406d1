package arbiter

import "gonum.org/v1/gonum/mat"

// Matrix is the matrix arbiter (spec §4.4): a lower-triangular priority
// matrix M[N][N] where priority(r,c) = M[r][c] if r<=c, else 1-M[c][r].
// Input i wins iff it requests and no other requesting input j has
// priority(j,i). Matrix arbitration is strong-fair: between any two
// continuously-requesting inputs, grants strictly alternate (P6, spec
// §8). The priority matrix is stored as a gonum dense matrix of 0/1
// values — a natural fit for the original's row/column update rule
// (matrix_arb.cpp's _SetPriority/_Priority), which is exactly a
// lower-triangular read with a mirrored complement above the diagonal.
type Matrix struct {
	n        int
	m        *mat.Dense
	requests []entry
	selected int
}

// NewMatrix creates a Matrix arbiter over n inputs, with every other
// input initially favored over input n-1 (mirrors the original's
// Init(), which seeds row i, column size-1 to 1 for every i).
func NewMatrix(n int) *Matrix {
	m := &Matrix{n: n, m: mat.NewDense(n, n, nil), requests: make([]entry, n), selected: -1}
	for i := 0; i < n; i++ {
		m.setPriority(i, n-1, 1)
	}
	return m
}

func (m *Matrix) priority(row, col int) float64 {
	if row <= col {
		return m.m.At(row, col)
	}
	return 1 - m.m.At(col, row)
}

func (m *Matrix) setPriority(row, col int, val float64) {
	if row < col {
		m.m.Set(row, col, val)
	}
}

// AddRequest registers a bid for input.
func (m *Matrix) AddRequest(input, id, pri int) {
	if !m.requests[input].valid || pri > m.requests[input].pri {
		m.requests[input] = entry{valid: true, id: id, pri: pri}
	}
}

// Arbitrate returns the input whose every other requesting rival ranks
// lower in the priority matrix.
func (m *Matrix) Arbitrate() (input, id, pri int, ok bool) {
	m.selected = -1
	for i := 0; i < m.n; i++ {
		if !m.requests[i].valid {
			continue
		}
		wins := true
		for j := 0; j < m.n; j++ {
			if j == i || !m.requests[j].valid {
				continue
			}
			if m.priority(j, i) != 0 {
				wins = false
				break
			}
		}
		if wins {
			m.selected = i
			return i, m.requests[i].id, m.requests[i].pri, true
		}
	}
	return -1, -1, -1, false
}

// UpdateState applies the winner's row/column update: the winning row is
// zeroed (it now loses to everyone) and the winning column is set to 1
// (everyone now beats it), so the next cycle's tied contenders pick a
// different winner — the mechanism behind strong fairness.
func (m *Matrix) UpdateState() {
	if m.selected < 0 {
		return
	}
	for i := 0; i < m.n; i++ {
		m.setPriority(m.selected, i, 0)
	}
	for i := 0; i < m.n; i++ {
		m.setPriority(i, m.selected, 1)
	}
}

// Clear drops all pending requests; the priority matrix survives.
func (m *Matrix) Clear() {
	for i := range m.requests {
		m.requests[i] = entry{}
	}
}
