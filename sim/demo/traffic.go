package demo

import (
	"math/rand"

	"github.com/noc-sim/noc-sim/sim"
)

// TrafficGenerator injects synthetic fixed-size packets at every ring
// source at a constant per-cycle probability, throttled by the same
// credit protocol the routers themselves observe, and records per-packet
// latency into a Metrics accumulator as packets are ejected (spec §1,
// §8 scenario 2: "steady low-rate traffic ... credits eventually return,
// no VC ever exceeds capacity").
//
// Call BeforeTick immediately before Network.Tick and AfterTick
// immediately after it, once per cycle — this keeps every injection and
// ejection FlitChannel/CreditChannel to exactly one Send and one Receive
// per cycle, the contract Channel itself does not enforce (spec §4.1).
type TrafficGenerator struct {
	net *sim.Network
	rng *rand.Rand

	numVCs     int
	numRouters int
	packetSize int
	rate       float64

	flits   *sim.FlitPool
	credits *sim.CreditPool
	metrics *sim.Metrics

	pending    [][]*sim.Flit      // per source, flits of the in-progress packet not yet injected
	injectCred []*sim.BufferState // per source, mirror of that router's own local-port buffer

	pendingEjectCredit []*sim.Credit // per dest, credit to send on the next BeforeTick

	nextPID    int
	nextFlitID int
}

// NewTrafficGenerator creates a generator for net, using rng for every
// random decision (injection timing, destination, so callers should
// derive it via PartitionedRNG.ForSubsystem(sim.SubsystemDemoTraffic) to
// keep the whole run's randomness reproducible from one seed — spec §5).
// rate is the per-source per-cycle probability of starting a new
// packetSize-flit packet. metrics accumulates completed-packet latency
// and ejected-flit counts.
func NewTrafficGenerator(cfg *sim.Config, net *sim.Network, rng *rand.Rand, rate float64, packetSize int, metrics *sim.Metrics) *TrafficGenerator {
	n := net.NumSources()
	tg := &TrafficGenerator{
		net:        net,
		rng:        rng,
		numVCs:     cfg.NumVCs,
		numRouters: n,
		packetSize: packetSize,
		rate:       rate,
		flits:      sim.NewFlitPool(),
		credits:    sim.NewCreditPool(),
		metrics:    metrics,

		pending:            make([][]*sim.Flit, n),
		injectCred:         make([]*sim.BufferState, n),
		pendingEjectCredit: make([]*sim.Credit, n),
	}
	for i := 0; i < n; i++ {
		tg.injectCred[i] = sim.NewBufferState(cfg.NumVCs, cfg.VCBufSize)
	}
	return tg
}

// BeforeTick decides, for every source, whether a flit departs this
// cycle, and forwards any credit generated by last cycle's ejection —
// each exactly once, satisfying the one-Send-per-tick channel contract.
func (tg *TrafficGenerator) BeforeTick(cycle int64) {
	for i := 0; i < tg.numRouters; i++ {
		if len(tg.pending[i]) == 0 && tg.rng.Float64() < tg.rate {
			tg.startPacket(i, cycle)
		}

		var toSend *sim.Flit
		if len(tg.pending[i]) > 0 {
			front := tg.pending[i][0]
			if tg.injectCred[i].HasCredit(front.VC) {
				toSend = front
				tg.injectCred[i].SendingFlit(front, front.VC)
				tg.pending[i] = tg.pending[i][1:]
			}
		}
		tg.net.WriteFlit(toSend, i)
	}

	for i := 0; i < tg.numRouters; i++ {
		tg.net.WriteCredit(tg.pendingEjectCredit[i], i)
		tg.pendingEjectCredit[i] = nil
	}
}

// AfterTick drains whatever this cycle's Tick produced at every
// injection-credit and ejection port, recording completed packets and
// staging the credit that frees the ejected VC for the next cycle.
func (tg *TrafficGenerator) AfterTick(cycle int64) {
	for i := 0; i < tg.numRouters; i++ {
		if c := tg.net.ReadCredit(i); c != nil {
			tg.injectCred[i].ProcessCredit(c)
		}
	}

	for i := 0; i < tg.numRouters; i++ {
		f := tg.net.ReadFlit(i)
		if f == nil {
			continue
		}
		tg.metrics.FlitsEjected++
		if f.Tail {
			tg.metrics.RecordPacket(cycle - int64(f.Time))
		}
		c := tg.credits.New()
		c.AddVC(f.VC)
		tg.pendingEjectCredit[i] = c
		tg.flits.Retire(f)
	}
}

func (tg *TrafficGenerator) startPacket(source int, cycle int64) {
	dest := tg.rng.Intn(tg.numRouters)
	if dest == source {
		dest = (dest + 1) % tg.numRouters
	}
	pid := tg.nextPID
	tg.nextPID++
	vc := pid % tg.numVCs

	packet := make([]*sim.Flit, tg.packetSize)
	for k := 0; k < tg.packetSize; k++ {
		f := tg.flits.New()
		f.ID = tg.nextFlitID
		tg.nextFlitID++
		f.PID = pid
		f.Head = k == 0
		f.Tail = k == tg.packetSize-1
		f.Type = sim.ReadRequest
		f.VC = vc
		f.Src = source
		f.Dest = dest
		f.Time = int(cycle)
		packet[k] = f
	}
	tg.pending[source] = packet
}
