package sim

// FlitType is the traffic class carried by a Flit, mirroring the
// original's Flit::FlitType enum (spec §3).
type FlitType int

const (
	ReadRequest FlitType = iota
	ReadReply
	WriteRequest
	WriteReply
	AnyType
)

func (t FlitType) String() string {
	switch t {
	case ReadRequest:
		return "read_request"
	case ReadReply:
		return "read_reply"
	case WriteRequest:
		return "write_request"
	case WriteReply:
		return "write_reply"
	case AnyType:
		return "any"
	default:
		return "unknown"
	}
}

// Flit is a control record representing one flow-control unit. Within a
// packet of size N, all flits share PID and arrive in SN order; exactly
// one is Head and exactly one is Tail (N=1 implies both) — spec §3.
type Flit struct {
	ID  int
	PID int // packet ID; shared by every flit of one packet

	Head bool
	Tail bool

	Type FlitType
	VC   int // current VC index; mutated on each hop

	Src  int
	Dest int

	Time int // injection time (ticks)
	Hops int
	Pri  int // carried priority, consumed by the "other" priority policy

	Watch bool // debug tracing flag

	// Routing-phase scratch fields, populated and consumed only by
	// routing functions (external collaborators) — the core never reads
	// or writes their meaning, only carries them hop to hop.
	Intm    int
	Ph      int
	RingPar int
	XThenY  int
	Minimal int

	// Data is an opaque payload handle; the core never dereferences it.
	Data any
}

// Reset restores a Flit to its zero value for reuse from the pool (§5,
// "Pool allocation"). Callers must not retain a Flit pointer past Retire.
func (f *Flit) Reset() {
	*f = Flit{}
}

// FlitPool is the free-list pool for Flit, avoiding per-cycle heap churn
// (spec §5). It embeds the generic Pool.
type FlitPool struct {
	pool *Pool[Flit]
}

// NewFlitPool creates an empty Flit pool.
func NewFlitPool() *FlitPool {
	return &FlitPool{pool: NewPool(func() *Flit { return &Flit{} })}
}

// New allocates a Flit from the free list (or the heap, if the free list
// is empty), resetting it first.
func (p *FlitPool) New() *Flit {
	f := p.pool.New()
	f.Reset()
	return f
}

// Retire returns a Flit to the free list. The caller must not use f after
// calling Retire.
func (p *FlitPool) Retire(f *Flit) {
	p.pool.Retire(f)
}

// DestroyAll drains the pool; used at end-of-simulation teardown.
func (p *FlitPool) DestroyAll() {
	p.pool.DestroyAll()
}
