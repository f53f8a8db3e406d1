package sim

// VCState is the per-VC state machine (spec §4.2). The two speculative
// sub-states exist only when speculation is enabled (§4.6); a
// non-speculative router never produces VCSpec or VCSpecGrant.
type VCState int

const (
	VCIdle VCState = iota
	VCRouting
	VCAlloc
	VCActive
	VCSpec      // speculative: routed, bidding in SA while VA is still pending
	VCSpecGrant // speculative: VA granted this cycle, promotes to Active next SA
)

func (s VCState) String() string {
	switch s {
	case VCIdle:
		return "idle"
	case VCRouting:
		return "routing"
	case VCAlloc:
		return "vc_alloc"
	case VCActive:
		return "active"
	case VCSpec:
		return "vc_spec"
	case VCSpecGrant:
		return "vc_spec_grant"
	default:
		return "unknown"
	}
}

// VC is one virtual channel of a router input: a bounded FIFO of flits
// plus the per-VC state machine, cached routing result, and output
// assignment (spec §3, §4.2).
type VC struct {
	id int // index within its input's Buffer

	buffer []*Flit // FIFO; buffer[0] is the front

	state     VCState
	stateTime int // cycles spent in the current state

	routeSet *OutputSet // cached result of Route(), valid until tail departs

	outPort int // -1 until VA grants
	outVC   int // -1 until VA grants

	pri int // current arbitration priority, recomputed on head-flit change

	expectedPID int  // guards against pid interleaving within ACTIVE (spec §3 invariant ii)
	hasExpected bool

	watched bool
}

// NewVC creates an empty VC in the IDLE state.
func NewVC(id int) *VC {
	return &VC{id: id, state: VCIdle, outPort: -1, outVC: -1}
}

// ID returns this VC's index within its input Buffer.
func (v *VC) ID() int { return v.id }

// Size returns the number of flits currently buffered.
func (v *VC) Size() int { return len(v.buffer) }

// Empty reports whether the VC holds no flits.
func (v *VC) Empty() bool { return len(v.buffer) == 0 }

// FrontFlit returns the head-of-line flit, or nil if empty.
func (v *VC) FrontFlit() *Flit {
	if len(v.buffer) == 0 {
		return nil
	}
	return v.buffer[0]
}

// AddFlit enqueues f. Enforces spec §3 invariant (i): a non-head flit must
// never arrive into an IDLE VC, and invariant (ii): every flit arriving
// between a head and its tail must share that head's PID. The PID guard is
// released when the tail arrives, so the next packet's head may queue
// behind it. Both are fatal-invariant violations (spec §7), reported
// rather than silently accepted so the caller (Router) can abort.
func (v *VC) AddFlit(routerID, input int, f *Flit) error {
	if !f.Head && v.state == VCIdle {
		return invariantf(routerID, input, v.id, f.ID, "non-head flit arrived at idle VC")
	}
	if v.hasExpected && f.PID != v.expectedPID {
		return invariantf(routerID, input, v.id, f.ID,
			"packet id mismatch: expected pid %d, got %d", v.expectedPID, f.PID)
	}
	if f.Head {
		v.expectedPID = f.PID
		v.hasExpected = true
	}
	if f.Tail {
		v.hasExpected = false
	}
	v.buffer = append(v.buffer, f)
	if f.Head && v.state == VCIdle {
		v.SetState(VCRouting)
	}
	return nil
}

// RemoveFlit dequeues and returns the head-of-line flit.
func (v *VC) RemoveFlit() *Flit {
	if len(v.buffer) == 0 {
		return nil
	}
	f := v.buffer[0]
	v.buffer = v.buffer[1:]
	return f
}

// State returns the VC's current pipeline state.
func (v *VC) State() VCState { return v.state }

// StateTime returns the number of cycles spent in the current state.
func (v *VC) StateTime() int { return v.stateTime }

// SetState transitions the VC and resets the time-in-state counter. By
// spec §3 invariant (iii), (out_port, out_vc) must be (-1,-1) exactly
// while in {IDLE, ROUTING, VC_ALLOC}; SetState enforces this on the
// IDLE/ROUTING/VC_ALLOC transitions, since Router never grants an output
// assignment in those states.
func (v *VC) SetState(s VCState) {
	v.state = s
	v.stateTime = 0
	switch s {
	case VCIdle, VCRouting, VCAlloc:
		v.outPort, v.outVC = -1, -1
		if s == VCIdle {
			v.routeSet = nil
		}
	}
}

// AdvanceTime increments the time-in-state counter; called once per tick
// from Buffer.AdvanceTime.
func (v *VC) AdvanceTime() {
	v.stateTime++
}

// RouteSet returns the cached OutputSet from the last Route() call, or
// nil before routing has run.
func (v *VC) RouteSet() *OutputSet {
	return v.routeSet
}

// SetOutput records the (port, vc) assignment a VC allocator grant made.
func (v *VC) SetOutput(port, vc int) {
	v.outPort, v.outVC = port, vc
}

// OutputPort returns the assigned output port, or -1 if unassigned.
func (v *VC) OutputPort() int { return v.outPort }

// OutputVC returns the assigned downstream VC, or -1 if unassigned.
func (v *VC) OutputVC() int { return v.outVC }

// Priority returns the VC's current arbitration priority.
func (v *VC) Priority() int { return v.pri }

// SetPriority overwrites the VC's arbitration priority; called by the
// router's priority policy whenever the head flit changes (spec §4.2).
func (v *VC) SetPriority(pri int) { v.pri = pri }

// RoutingFunc is the pure (router, flit, in_channel) -> OutputSet contract
// spec §6 assigns to the external routing collaborator. out is cleared
// and then populated by the implementation; inject marks a flit being
// injected at its source rather than forwarded. VC.Route always passes
// false.
type RoutingFunc func(router *Router, flit *Flit, inChannel int, out *OutputSet, inject bool)

// Route invokes rf on the VC's head flit exactly once per head flit,
// caching the result until the tail departs (spec §4.2). Calling Route
// again before the tail departs is a no-op returning the cached set.
func (v *VC) Route(rf RoutingFunc, router *Router, f *Flit, inChannel int) *OutputSet {
	if v.routeSet != nil {
		return v.routeSet
	}
	out := NewOutputSet(router.NumOutputs())
	rf(router, f, inChannel, out, false)
	v.routeSet = out
	return out
}

// SetWatch toggles debug tracing for this VC.
func (v *VC) SetWatch(watch bool) { v.watched = watch }

// IsWatched reports whether this VC is flagged for debug tracing.
func (v *VC) IsWatched() bool { return v.watched }

// DonatePriority implements the optional "priority donation" behavior of
// spec §4.2: scan the whole buffer and elevate the head's priority to the
// highest priority found among its own flits. Useful when VA can reorder
// packets and a later flit's carried priority ("other" priority policy)
// should not be stranded behind a lower-priority head.
func (v *VC) DonatePriority() {
	best := v.pri
	for _, f := range v.buffer {
		if f.Pri > best {
			best = f.Pri
		}
	}
	v.pri = best
}
