package sim

// Credit carries the set of VC indices freed on the previous cycle at one
// router input (spec §3). Emitted at most once per (router, input) per
// cycle, and only when some flit departed that input.
type Credit struct {
	ID   int
	VCs  []int // freed VC indices this cycle
	Head bool  // optional tracing metadata; the router does not set Head or Tail
	Tail bool
}

// Reset restores a Credit to its zero value for pool reuse.
func (c *Credit) Reset() {
	c.ID = 0
	c.VCs = c.VCs[:0]
	c.Head = false
	c.Tail = false
}

// AddVC appends a freed VC id to the credit, matching the original's
// Credit::AddVC (vcs.size() bounded by num_vcs, per the §3 invariant).
func (c *Credit) AddVC(vc int) {
	c.VCs = append(c.VCs, vc)
}

// CreditPool is the free-list pool for Credit (spec §5).
type CreditPool struct {
	pool *Pool[Credit]
}

// NewCreditPool creates an empty Credit pool.
func NewCreditPool() *CreditPool {
	return &CreditPool{pool: NewPool(func() *Credit { return &Credit{} })}
}

// New allocates a Credit from the free list, resetting it first.
func (p *CreditPool) New() *Credit {
	c := p.pool.New()
	c.Reset()
	return c
}

// Retire returns a Credit to the free list.
func (p *CreditPool) Retire(c *Credit) {
	p.pool.Retire(c)
}

// DestroyAll drains the pool.
func (p *CreditPool) DestroyAll() {
	p.pool.DestroyAll()
}
