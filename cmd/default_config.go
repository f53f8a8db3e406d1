package cmd

import "github.com/noc-sim/noc-sim/sim"

// scenario bundles a named demo preset — the config overrides plus the
// ring size and traffic parameters for one of spec §8's concrete
// scenarios or a general smoke-test preset — for the CLI's --scenario flag.
type scenario struct {
	numRouters int
	rate       float64
	packetSize int
	configure  func(cfg *sim.Config)
}

var scenarios = map[string]scenario{
	// Scenario 1: single-flit ping. No steady traffic; callers inject the
	// one flit explicitly, so rate is 0.
	"ping": {
		numRouters: 4,
		rate:       0,
		packetSize: 1,
		configure: func(cfg *sim.Config) {
			cfg.NumVCs = 1
			cfg.VCBufSize = 4
			cfg.RoutingDelay = 0
		},
	},
	// Scenario 2: credit return on ejection. Back-to-back single-flit
	// packets over a 1-VC, 4-slot link; steady state should approach 1
	// flit/cycle once credits mask the round trip.
	"credit-return": {
		numRouters: 4,
		rate:       1.0,
		packetSize: 1,
		configure: func(cfg *sim.Config) {
			cfg.NumVCs = 1
			cfg.VCBufSize = 4
		},
	},
	// Scenario 4: speculation hit rate under light, multi-VC load.
	"speculative": {
		numRouters: 8,
		rate:       0.3,
		packetSize: 4,
		configure: func(cfg *sim.Config) {
			cfg.NumVCs = 4
			cfg.VCBufSize = 8
			cfg.Speculative = 2
			cfg.FilterSpecGrants = "any_nonspec_gnts"
		},
	},
	// A general steady-traffic preset exercising multiple VCs at a
	// moderate injection rate, for smoke-testing a build.
	"steady": {
		numRouters: 6,
		rate:       0.2,
		packetSize: 3,
		configure: func(cfg *sim.Config) {
			cfg.NumVCs = 2
			cfg.VCBufSize = 6
		},
	},
}

// loadScenario returns the baseline sim.Config plus topology/traffic
// parameters for a named preset, or ok=false if name is unrecognized.
func loadScenario(name string) (cfg *sim.Config, numRouters int, rate float64, packetSize int, ok bool) {
	s, found := scenarios[name]
	if !found {
		return nil, 0, 0, 0, false
	}
	cfg = sim.DefaultConfig()
	s.configure(cfg)
	return cfg, s.numRouters, s.rate, s.packetSize, true
}
