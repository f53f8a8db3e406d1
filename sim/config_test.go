package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Validates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejectsZeroVCs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumVCs = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateAllowsZeroRoutingDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoutingDelay = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNegativeSTFinalDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.STFinalDelay = -1
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsUnknownFilterModeWhenSpeculative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speculative = 2
	cfg.FilterSpecGrants = "nonsense"
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateIgnoresFilterModeWhenNotSpeculative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speculative = 0
	cfg.FilterSpecGrants = "nonsense"
	assert.NoError(t, cfg.Validate())
}
