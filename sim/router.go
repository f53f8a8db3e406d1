package sim

import (
	"github.com/noc-sim/noc-sim/sim/allocator"
	"github.com/noc-sim/noc-sim/sim/telemetry"
)

// Router implements the four-stage input-queued pipeline of spec §4.6:
// RC (route computation) -> VA (VC allocation) -> SA (switch allocation,
// optionally speculative) -> ST (switch traversal), driven by the
// three-phase ReadInputs/InternalStep/WriteOutputs cooperative schedule
// every component in this package follows (spec §5). Grounded on the
// original's IQRouter (src/routers/iq_router.cpp).
type Router struct {
	id  int
	ctx *SimulationContext
	cfg *Config

	numInputs, numOutputs       int
	numVCs                      int
	inputSpeedup, outputSpeedup int
	speculative                 int
	holdSwitchForPacket         bool
	filterMode                  allocator.FilterMode

	rf       RoutingFunc
	priority PriorityPolicy

	inputs  []*Buffer
	outputs []*BufferState

	vcAllocator     allocator.Allocator
	swAllocator     allocator.Allocator
	specSWAllocator allocator.Allocator

	inChannels  []*FlitChannel
	outChannels []*FlitChannel

	inCreditChannels  []*CreditChannel // Send here: tells upstream which of our input VCs freed up
	outCreditChannels []*CreditChannel // Receive here: downstream tells us which of its VCs freed up

	crossbarPipe []*Channel[Flit]   // one per expanded output (numOutputs*outputSpeedup)
	creditPipe   []*Channel[Credit] // one per physical input

	pendingInFlit    []*Flit
	pendingOutCredit []*Credit

	outputQueue   [][]*Flit   // per physical output, FIFO drained from crossbarPipe
	inCreditQueue [][]*Credit // per physical input, FIFO drained from creditPipe

	switchHoldIn  []int // per expanded input: held expanded output, or -1
	switchHoldVC  []int // per expanded input: held downstream vc, or -1
	switchHoldOut []int // per expanded output: held expanded input, or -1
	swRROffset    []int // per expanded input: next VC to examine in SA, for fairness

	faultyOutputs []bool

	creditPool *CreditPool

	bufferMon *telemetry.BufferMonitor
	switchMon *telemetry.SwitchMonitor
}

// NewRouter builds a Router with numInputs/numOutputs physical ports,
// sized from cfg. rf is the routing function this router's VCs invoke at
// RC (spec §6).
func NewRouter(ctx *SimulationContext, id, numInputs, numOutputs int, rf RoutingFunc) (*Router, error) {
	cfg := ctx.Config

	pri, err := NewPriorityPolicy(cfg.Priority)
	if err != nil {
		return nil, err
	}

	r := &Router{
		id:                  id,
		ctx:                 ctx,
		cfg:                 cfg,
		numInputs:           numInputs,
		numOutputs:          numOutputs,
		numVCs:              cfg.NumVCs,
		inputSpeedup:        cfg.InputSpeedup,
		outputSpeedup:       cfg.OutputSpeedup,
		speculative:         cfg.Speculative,
		holdSwitchForPacket: cfg.HoldSwitchForPacket,
		rf:                  rf,
		priority:            pri,

		inputs:  make([]*Buffer, numInputs),
		outputs: make([]*BufferState, numOutputs),

		inChannels:  make([]*FlitChannel, numInputs),
		outChannels: make([]*FlitChannel, numOutputs),

		inCreditChannels:  make([]*CreditChannel, numInputs),
		outCreditChannels: make([]*CreditChannel, numOutputs),

		pendingInFlit:    make([]*Flit, numInputs),
		pendingOutCredit: make([]*Credit, numOutputs),

		outputQueue:   make([][]*Flit, numOutputs),
		inCreditQueue: make([][]*Credit, numInputs),

		faultyOutputs: make([]bool, numOutputs),

		creditPool: NewCreditPool(),
	}

	for i := range r.inputs {
		r.inputs[i] = NewBuffer(cfg.NumVCs, cfg.VCBufSize, cfg.SharedBufSize)
	}
	for o := range r.outputs {
		r.outputs[o] = NewBufferState(cfg.NumVCs, cfg.VCBufSize)
	}

	vcIters := cfg.VCAllocIters
	if vcIters == 0 {
		vcIters = cfg.AllocIters
	}
	swIters := cfg.SWAllocIters
	if swIters == 0 {
		swIters = cfg.AllocIters
	}

	r.vcAllocator, err = allocator.New(cfg.VCAllocator, cfg.VCAllocArbType, numInputs*cfg.NumVCs, numOutputs*cfg.NumVCs, vcIters)
	if err != nil {
		return nil, invariantf(id, -1, -1, -1, "%v", err)
	}
	r.swAllocator, err = allocator.New(cfg.SWAllocator, cfg.SWAllocArbType, numInputs*cfg.InputSpeedup, numOutputs*cfg.OutputSpeedup, swIters)
	if err != nil {
		return nil, invariantf(id, -1, -1, -1, "%v", err)
	}
	if cfg.Speculative == 2 {
		r.specSWAllocator, err = allocator.New(cfg.SWAllocator, cfg.SWAllocArbType, numInputs*cfg.InputSpeedup, numOutputs*cfg.OutputSpeedup, swIters)
		if err != nil {
			return nil, invariantf(id, -1, -1, -1, "%v", err)
		}
		mode, ok := allocator.ParseFilterMode(cfg.FilterSpecGrants)
		if !ok {
			return nil, invariantf(id, -1, -1, -1, "unknown filter_spec_grants %q", cfg.FilterSpecGrants)
		}
		r.filterMode = mode
	}

	numExpOut := numOutputs * cfg.OutputSpeedup
	r.crossbarPipe = make([]*Channel[Flit], numExpOut)
	for i := range r.crossbarPipe {
		r.crossbarPipe[i] = NewChannel[Flit](cfg.STPrepareDelay + cfg.STFinalDelay)
	}
	r.creditPipe = make([]*Channel[Credit], numInputs)
	for i := range r.creditPipe {
		r.creditPipe[i] = NewChannel[Credit](cfg.CreditDelay)
	}

	numExpIn := numInputs * cfg.InputSpeedup
	r.switchHoldIn = make([]int, numExpIn)
	r.switchHoldVC = make([]int, numExpIn)
	r.swRROffset = make([]int, numExpIn)
	for i := range r.switchHoldIn {
		r.switchHoldIn[i] = -1
		r.switchHoldVC[i] = -1
	}
	r.switchHoldOut = make([]int, numExpOut)
	for i := range r.switchHoldOut {
		r.switchHoldOut[i] = -1
	}

	r.bufferMon = telemetry.NewBufferMonitor(numInputs, int(AnyType)+1)
	r.switchMon = telemetry.NewSwitchMonitor(numInputs, numOutputs, int(AnyType)+1)

	return r, nil
}

// ID returns this router's identifier.
func (r *Router) ID() int { return r.id }

// NumInputs returns the number of physical input ports.
func (r *Router) NumInputs() int { return r.numInputs }

// NumOutputs returns the number of physical output ports, satisfying the
// contract VC.Route relies on to size a fresh OutputSet.
func (r *Router) NumOutputs() int { return r.numOutputs }

// AddInputChannel wires the FlitChannel and CreditChannel for input port.
func (r *Router) AddInputChannel(input int, fc *FlitChannel, cc *CreditChannel) {
	r.inChannels[input] = fc
	r.inCreditChannels[input] = cc
}

// AddOutputChannel wires the FlitChannel and CreditChannel for output port.
func (r *Router) AddOutputChannel(output int, fc *FlitChannel, cc *CreditChannel) {
	r.outChannels[output] = fc
	r.outCreditChannels[output] = cc
}

// SetOutputFault marks an output port faulty or healthy; a faulty output
// is excluded from VC allocation and switch allocation candidate sets by
// the routing function (spec §4.6, fault injection is an external
// collaborator concern — Router only stores and exposes the flag).
func (r *Router) SetOutputFault(port int, fault bool) { r.faultyOutputs[port] = fault }

// IsFaultyOutput reports whether output port is currently marked faulty.
func (r *Router) IsFaultyOutput(port int) bool { return r.faultyOutputs[port] }

// NumVCs returns the number of virtual channels per physical port,
// letting an external routing function size its OutputSet ranges.
func (r *Router) NumVCs() int { return r.numVCs }

// GetBuffer returns the total number of flits queued at input, across
// every VC, for statistics/introspection (spec §4.6).
func (r *Router) GetBuffer(input int) int {
	total := 0
	buf := r.inputs[input]
	for vc := 0; vc < buf.NumVCs(); vc++ {
		total += buf.VC(vc).Size()
	}
	return total
}

// GetCredit returns the summed downstream occupancy on output across
// [vcBegin, vcEnd], or every VC if vcBegin is -1 (spec §4.6).
func (r *Router) GetCredit(output, vcBegin, vcEnd int) int {
	bs := r.outputs[output]
	if vcBegin == -1 {
		vcBegin, vcEnd = 0, bs.NumVCs()-1
	}
	total := 0
	for vc := vcBegin; vc <= vcEnd; vc++ {
		total += bs.Occupancy(vc)
	}
	return total
}

// ReadInputs stages this cycle's arriving flits and credits without
// mutating any VC state (spec §5 phase 1).
func (r *Router) ReadInputs() error {
	for i := 0; i < r.numInputs; i++ {
		r.pendingInFlit[i] = r.inChannels[i].Receive()
	}
	for o := 0; o < r.numOutputs; o++ {
		r.pendingOutCredit[o] = r.outCreditChannels[o].Receive()
	}
	return nil
}

// InternalStep runs the RC->VA->SA pipeline stages and advances every
// VC's time-in-state counter (spec §5 phase 2).
func (r *Router) InternalStep() error {
	if err := r.inputQueuing(); err != nil {
		return err
	}
	r.routeEvaluate()
	if err := r.vcAllocate(); err != nil {
		return err
	}
	if err := r.switchAllocate(); err != nil {
		return err
	}
	for _, buf := range r.inputs {
		buf.AdvanceTime()
	}
	r.outputQueuing()
	r.switchMon.Cycle()
	r.bufferMon.Cycle()
	return nil
}

// WriteOutputs drains this router's persistent output FIFOs onto its
// egress channels, exactly one Send per channel (spec §5 phase 3).
func (r *Router) WriteOutputs() {
	for o := 0; o < r.numOutputs; o++ {
		var f *Flit
		if len(r.outputQueue[o]) > 0 {
			f = r.outputQueue[o][0]
			r.outputQueue[o] = r.outputQueue[o][1:]
		}
		r.outChannels[o].SendFlit(f)
	}
	for i := 0; i < r.numInputs; i++ {
		var c *Credit
		if len(r.inCreditQueue[i]) > 0 {
			c = r.inCreditQueue[i][0]
			r.inCreditQueue[i] = r.inCreditQueue[i][1:]
		}
		r.inCreditChannels[i].Send(c)
	}
}

func (r *Router) updatePriority(input, vc int) {
	v := r.inputs[input].VC(vc)
	f := v.FrontFlit()
	if f == nil {
		return
	}
	v.SetPriority(r.priority.Compute(v, f))
	if r.cfg.Priority == "other" {
		// Under OtherPriority a flit's own Pri field drives arbitration, so a
		// higher-priority flit buffered behind the head must not be stranded;
		// donate it forward (spec §4.2 (e)).
		v.DonatePriority()
	}
}

// inputQueuing enqueues arrived flits into their VC buffers, transitions
// freshly-arrived head flits out of IDLE, and applies arrived credits
// (spec §4.6 _InputQueuing).
func (r *Router) inputQueuing() error {
	for input := 0; input < r.numInputs; input++ {
		f := r.pendingInFlit[input]
		r.pendingInFlit[input] = nil
		if f == nil {
			continue
		}
		ok, err := r.inputs[input].AddFlit(r.id, input, f.VC, f)
		if err != nil {
			return err
		}
		if !ok {
			return invariantf(r.id, input, f.VC, f.ID, "VC buffer overflow")
		}
		r.bufferMon.Write(input, int(f.Type))
		v := r.inputs[input].VC(f.VC)
		if v.State() == VCRouting && v.StateTime() == 0 && v.FrontFlit() == f {
			r.updatePriority(input, f.VC)
		}
	}
	for output := 0; output < r.numOutputs; output++ {
		c := r.pendingOutCredit[output]
		r.pendingOutCredit[output] = nil
		if c == nil {
			continue
		}
		r.outputs[output].ProcessCredit(c)
	}
	return nil
}

// routeEvaluate invokes the routing function for every VC whose RC delay
// has elapsed, then advances it to VC_SPEC (speculative) or VC_ALLOC
// (spec §4.6 _Route).
func (r *Router) routeEvaluate() {
	for input := 0; input < r.numInputs; input++ {
		buf := r.inputs[input]
		for vc := 0; vc < buf.NumVCs(); vc++ {
			v := buf.VC(vc)
			if v.State() != VCRouting || v.StateTime() < r.cfg.RoutingDelay {
				continue
			}
			f := v.FrontFlit()
			if f == nil {
				continue
			}
			v.Route(r.rf, r, f, input)
			if r.speculative > 0 {
				v.SetState(VCSpec)
			} else {
				v.SetState(VCAlloc)
			}
		}
	}
}

func (r *Router) addVCRequests(input, vc int) {
	v := r.inputs[input].VC(vc)
	rs := v.RouteSet()
	if rs == nil {
		return
	}
	for output := 0; output < r.numOutputs; output++ {
		for _, e := range rs.Entries(output) {
			for outVC := e.VCStart; outVC <= e.VCEnd; outVC++ {
				if !r.outputs[output].IsAvailableFor(outVC) {
					continue
				}
				r.vcAllocator.AddRequest(input*r.numVCs+vc, output*r.numVCs+outVC, 1, e.Pri, v.Priority())
			}
		}
	}
}

// vcAllocate runs one round of VC allocation for every eligible VC and
// applies grants (spec §4.6 _VCAlloc).
func (r *Router) vcAllocate() error {
	r.vcAllocator.Clear()
	for input := 0; input < r.numInputs; input++ {
		buf := r.inputs[input]
		for vc := 0; vc < buf.NumVCs(); vc++ {
			v := buf.VC(vc)
			if (v.State() != VCAlloc && v.State() != VCSpec) || v.StateTime() < r.cfg.VCAllocDelay {
				continue
			}
			r.addVCRequests(input, vc)
		}
	}
	r.vcAllocator.Allocate()

	for output := 0; output < r.numOutputs; output++ {
		for outVC := 0; outVC < r.numVCs; outVC++ {
			inputAndVC := r.vcAllocator.InputAssigned(output*r.numVCs + outVC)
			if inputAndVC == -1 {
				continue
			}
			matchInput := inputAndVC / r.numVCs
			matchVC := inputAndVC % r.numVCs
			v := r.inputs[matchInput].VC(matchVC)
			if v.State() == VCSpec {
				v.SetState(VCSpecGrant)
			} else {
				v.SetState(VCActive)
			}
			v.SetOutput(output, outVC)
			r.outputs[output].TakeBuffer(outVC)
		}
	}
	return nil
}

// specCandidatePorts returns the output ports a speculative VC should bid
// on in SA this cycle: when VA hasn't granted yet, every candidate port
// from RC on which at least one candidate VC has credit; once it has,
// just the already-resolved port.
func (r *Router) specCandidatePorts(v *VC) []int {
	if v.State() == VCSpecGrant {
		return []int{v.OutputPort()}
	}
	rs := v.RouteSet()
	if rs == nil {
		return nil
	}
	var ports []int
	for _, p := range rs.AllPorts() {
		available := false
		for _, e := range rs.Entries(p) {
			for vc := e.VCStart; vc <= e.VCEnd; vc++ {
				if r.outputs[p].HasCredit(vc) {
					available = true
					break
				}
			}
			if available {
				break
			}
		}
		if available {
			ports = append(ports, p)
		}
	}
	return ports
}

// switchAllocate runs switch allocation (optionally speculative) and
// performs switch traversal for every winning (input, output) pair,
// building and forwarding credits for the freed input-side VCs (spec
// §4.6 _SWAlloc, the largest and most stateful stage).
func (r *Router) switchAllocate() error {
	r.swAllocator.Clear()
	if r.specSWAllocator != nil {
		r.specSWAllocator.Clear()
	}

	numExpIn := r.numInputs * r.inputSpeedup
	numExpOut := r.numOutputs * r.outputSpeedup

	anyNonSpecOutputReqs := make([]bool, numExpOut)

	for input := 0; input < r.numInputs; input++ {
		buf := r.inputs[input]
		for s := 0; s < r.inputSpeedup; s++ {
			expIn := s*r.numInputs + input
			for iter := 0; iter < r.numVCs; iter++ {
				vc := (r.swRROffset[expIn] + iter) % r.numVCs
				if r.inputSpeedup > 1 && vc%r.inputSpeedup != s {
					continue
				}
				cur := buf.VC(vc)
				if cur.Empty() {
					continue
				}
				switch cur.State() {
				case VCActive:
					outPort := cur.OutputPort()
					if !r.outputs[outPort].HasCredit(cur.OutputVC()) {
						continue
					}
					expOut := (input%r.outputSpeedup)*r.numOutputs + outPort
					if r.switchHoldIn[expIn] != -1 || r.switchHoldOut[expOut] != -1 {
						continue
					}
					pri := cur.Priority()
					if r.speculative == 1 {
						pri = 1
					}
					r.swAllocator.AddRequest(expIn, expOut, vc, pri, pri)
					anyNonSpecOutputReqs[expOut] = true
				case VCSpec, VCSpecGrant:
					for _, port := range r.specCandidatePorts(cur) {
						expOut := (input%r.outputSpeedup)*r.numOutputs + port
						if r.switchHoldIn[expIn] != -1 || r.switchHoldOut[expOut] != -1 {
							continue
						}
						if r.speculative == 1 {
							r.swAllocator.AddRequest(expIn, expOut, vc, 0, 0)
						} else if r.specSWAllocator != nil {
							pri := cur.Priority()
							r.specSWAllocator.AddRequest(expIn, expOut, vc, pri, pri)
						}
					}
				}
			}
		}
	}

	r.swAllocator.Allocate()
	if r.specSWAllocator != nil {
		r.specSWAllocator.Allocate()
	}

	// Promote speculatively-granted VCs to active before reading final
	// winners, matching the original's ordering: a VC that already won VA
	// this cycle is eligible to cross regardless of which allocator's
	// grant is honored below.
	for input := 0; input < r.numInputs; input++ {
		buf := r.inputs[input]
		for vc := 0; vc < buf.NumVCs(); vc++ {
			if buf.VC(vc).State() == VCSpecGrant {
				buf.VC(vc).SetState(VCActive)
			}
		}
	}

	nonSpecGrants := make([]int, numExpIn)
	specGrants := make([]int, numExpIn)
	for i := range nonSpecGrants {
		nonSpecGrants[i] = r.swAllocator.OutputAssigned(i)
		specGrants[i] = -1
		if r.specSWAllocator != nil {
			specGrants[i] = r.specSWAllocator.OutputAssigned(i)
		}
	}
	var survivors []int
	if r.specSWAllocator != nil {
		survivors = allocator.FilterSpeculativeGrants(r.filterMode, specGrants, nonSpecGrants, anyNonSpecOutputReqs)
	}

	flitsToSend := make([]*Flit, numExpOut)
	sentOut := make([]bool, numExpOut)

	for input := 0; input < r.numInputs; input++ {
		buf := r.inputs[input]
		var credit *Credit

		for s := 0; s < r.inputSpeedup; s++ {
			expIn := s*r.numInputs + input

			expOut := -1
			vc := -1
			useSpec := false

			if held := r.switchHoldIn[expIn]; held != -1 {
				expOut = held
				vc = r.switchHoldVC[expIn]
				if buf.VC(vc).Empty() {
					r.switchHoldIn[expIn] = -1
					r.switchHoldVC[expIn] = -1
					r.switchHoldOut[expOut] = -1
					continue
				}
			} else if out := nonSpecGrants[expIn]; out != -1 {
				expOut = out
			} else if r.specSWAllocator != nil && len(survivors) > 0 && survivors[expIn] != -1 {
				expOut = survivors[expIn]
				useSpec = true
			}

			if expOut == -1 {
				continue
			}
			if vc == -1 {
				var label int
				var ok bool
				if useSpec {
					label, ok = r.specSWAllocator.ReadRequest(expIn, expOut)
				} else {
					label, ok = r.swAllocator.ReadRequest(expIn, expOut)
				}
				if !ok {
					continue
				}
				vc = label
			}

			cur := buf.VC(vc)
			if cur.State() != VCActive {
				// Speculative grant whose VA bid failed this cycle; soundness
				// requires only an already-ACTIVE VC may cross (P7).
				continue
			}
			output := expOut % r.numOutputs
			dest := r.outputs[output]
			if !dest.HasCredit(cur.OutputVC()) {
				continue
			}

			if r.holdSwitchForPacket {
				r.switchHoldIn[expIn] = expOut
				r.switchHoldVC[expIn] = vc
				r.switchHoldOut[expOut] = expIn
			}

			f := r.inputs[input].RemoveFlit(vc)
			f.Hops++
			r.switchMon.Traversal(input, output, int(f.Type))
			r.bufferMon.Read(input, int(f.Type))

			if credit == nil {
				credit = r.creditPool.New()
			}
			credit.AddVC(vc)

			f.VC = cur.OutputVC()
			dest.SendingFlit(f, f.VC)

			flitsToSend[expOut] = f
			sentOut[expOut] = true

			if f.Tail {
				cur.SetState(VCIdle)
				if !cur.Empty() {
					// The next packet's head is already queued behind the tail.
					cur.SetState(VCRouting)
					r.updatePriority(input, vc)
				}
				r.switchHoldIn[expIn] = -1
				r.switchHoldVC[expIn] = -1
				r.switchHoldOut[expOut] = -1
			} else {
				r.updatePriority(input, vc)
			}
			r.swRROffset[expIn] = (vc + 1) % r.numVCs
		}

		r.creditPipe[input].Send(credit)
	}

	for eo := 0; eo < numExpOut; eo++ {
		if sentOut[eo] {
			r.crossbarPipe[eo].Send(flitsToSend[eo])
		} else {
			r.crossbarPipe[eo].Send(nil)
		}
	}
	return nil
}

// outputQueuing drains the crossbar and credit pipelines into the
// per-physical-port FIFOs WriteOutputs serves from (spec §4.6
// _OutputQueuing).
func (r *Router) outputQueuing() {
	for t := 0; t < r.outputSpeedup; t++ {
		for output := 0; output < r.numOutputs; output++ {
			expOut := t*r.numOutputs + output
			f := r.crossbarPipe[expOut].Receive()
			if f != nil {
				r.outputQueue[output] = append(r.outputQueue[output], f)
			}
		}
	}
	for input := 0; input < r.numInputs; input++ {
		c := r.creditPipe[input].Receive()
		if c != nil {
			r.inCreditQueue[input] = append(r.inCreditQueue[input], c)
		}
	}
}
