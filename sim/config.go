package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/noc-sim/noc-sim/sim/allocator"
	"github.com/noc-sim/noc-sim/sim/arbiter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the full per-run configuration surface named in spec §6. All
// fields are listed explicitly so `KnownFields(true)` strict YAML parsing
// catches typos rather than silently ignoring them, following the
// teacher's defaults.yaml convention (cmd/default_config.go).
type Config struct {
	NumVCs        int `yaml:"num_vcs"`
	VCBufSize     int `yaml:"vc_buf_size"`
	SharedBufSize int `yaml:"shared_buf_size"`

	Speculative         int    `yaml:"speculative"` // 0, 1, or 2 — see spec §4.6
	FilterSpecGrants    string `yaml:"filter_spec_grants"`
	HoldSwitchForPacket bool   `yaml:"hold_switch_for_packet"`

	VCAllocator    string `yaml:"vc_allocator"`
	SWAllocator    string `yaml:"sw_allocator"`
	VCAllocArbType string `yaml:"vc_alloc_arb_type"`
	SWAllocArbType string `yaml:"sw_alloc_arb_type"`

	AllocIters   int `yaml:"alloc_iters"`
	VCAllocIters int `yaml:"vc_alloc_iters"`
	SWAllocIters int `yaml:"sw_alloc_iters"`

	RoutingDelay   int `yaml:"routing_delay"`
	VCAllocDelay   int `yaml:"vc_alloc_delay"`
	SWAllocDelay   int `yaml:"sw_alloc_delay"`
	STPrepareDelay int `yaml:"st_prepare_delay"`
	STFinalDelay   int `yaml:"st_final_delay"`
	CreditDelay    int `yaml:"credit_delay"`

	InputSpeedup  int `yaml:"input_speedup"`
	OutputSpeedup int `yaml:"output_speedup"`

	Priority        string `yaml:"priority"`
	RoutingFunction string `yaml:"routing_function"`
	Topology        string `yaml:"topology"`
}

// DefaultConfig returns the baseline configuration used by scenario 1
// (single-flit ping): one VC, minimal delays, round-robin everywhere.
func DefaultConfig() *Config {
	return &Config{
		NumVCs:           1,
		VCBufSize:        4,
		SharedBufSize:    0,
		Speculative:      0,
		FilterSpecGrants: "any_nonspec_gnts",
		VCAllocator:      "separable_input_first",
		SWAllocator:      "separable_input_first",
		VCAllocArbType:   "round_robin",
		SWAllocArbType:   "round_robin",
		AllocIters:       1,
		VCAllocIters:     1,
		SWAllocIters:     1,
		RoutingDelay:     0,
		VCAllocDelay:     1,
		SWAllocDelay:     1,
		STPrepareDelay:   1,
		STFinalDelay:     0,
		CreditDelay:      1,
		InputSpeedup:     1,
		OutputSpeedup:    1,
		Priority:         "none",
		RoutingFunction:  "dor",
		Topology:         "ring",
	}
}

// Validate rejects configurations that would violate pipeline invariants
// before a single cycle runs: every delay must be at least 1 except
// routing_delay and st_final_delay, which may be 0 (spec §6).
func (c *Config) Validate() error {
	type bound struct {
		name string
		val  int
		min  int
	}
	bounds := []bound{
		{"num_vcs", c.NumVCs, 1},
		{"vc_buf_size", c.VCBufSize, 1},
		{"vc_alloc_delay", c.VCAllocDelay, 1},
		{"sw_alloc_delay", c.SWAllocDelay, 1},
		{"st_prepare_delay", c.STPrepareDelay, 1},
		{"credit_delay", c.CreditDelay, 1},
		{"input_speedup", c.InputSpeedup, 1},
		{"output_speedup", c.OutputSpeedup, 1},
		{"routing_delay", c.RoutingDelay, 0},
		{"st_final_delay", c.STFinalDelay, 0},
		{"shared_buf_size", c.SharedBufSize, 0},
		{"alloc_iters", c.AllocIters, 1},
	}
	for _, b := range bounds {
		if b.val < b.min {
			return fmt.Errorf("config: %s must be >= %d, got %d", b.name, b.min, b.val)
		}
	}
	if _, ok := allocator.ParseFilterMode(c.FilterSpecGrants); c.Speculative != 0 && !ok {
		return fmt.Errorf("config: unknown filter_spec_grants %q", c.FilterSpecGrants)
	}
	for _, a := range []struct{ name, val string }{{"vc_alloc_arb_type", c.VCAllocArbType}, {"sw_alloc_arb_type", c.SWAllocArbType}} {
		if _, err := arbiter.New(a.val, 1); err != nil {
			return fmt.Errorf("config: %s: %w", a.name, err)
		}
	}
	return nil
}

// LoadConfig reads and strictly parses a YAML config file, following the
// teacher's KnownFields(true) pattern (cmd/default_config.go), then
// fatally aborts on a read or validation error — configuration mistakes
// are a startup-time concern, not something the pipeline should limp
// through.
func LoadConfig(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("sim: failed to read config %s: %v", path, err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		logrus.Fatalf("sim: failed to parse config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("sim: invalid config %s: %v", path, err)
	}
	return cfg
}
