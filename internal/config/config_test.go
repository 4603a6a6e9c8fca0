package config

import (
	"os"
	"path/filepath"
	"testing"

	"gosupply/internal/compare"
	"gosupply/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "INTENT_PROVIDER", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"LLM_MODEL", "PLANNING_POLICY_FILE", "ROUTE_TIME_VALUE_PER_HOUR",
		"SIMULATION_RUNS", "SIMULATION_SEED", "LOG_FORMAT", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderNone, cfg.AI.Provider)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 500.0, cfg.Planning.RouteTimeValuePerHour)
	assert.Equal(t, compare.DefaultSupplierWeights, cfg.Planning.SupplierWeights)
	assert.Equal(t, 1.65, cfg.Planning.TransferServiceFactor)
	assert.EqualValues(t, 42, cfg.Planning.SimulationSeed)

	err = cfg.RequireDatabase()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadPicksProviderFromKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
}

func TestLoadRejectsProviderWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTENT_PROVIDER", "openai")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTENT_PROVIDER", "bard")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIMULATION_SEED", "-3")

	_, err := Load()
	assert.Error(t, err)
}

func TestPolicyFileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUTE_TIME_VALUE_PER_HOUR", "250")
	t.Setenv("SIMULATION_RUNS", "300")

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
route_time_value_per_hour: 800
supplier_weights:
  quality: 0.5
  lead_time: 0.3
  cost: 0.2
`), 0o600))
	t.Setenv("PLANNING_POLICY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 800.0, cfg.Planning.RouteTimeValuePerHour)
	assert.Equal(t, compare.SupplierWeights{Quality: 0.5, LeadTime: 0.3, Cost: 0.2}, cfg.Planning.SupplierWeights)
	assert.Equal(t, 300, cfg.Planning.SimulationRuns)
}

func TestPolicyRejectsUnknownKeys(t *testing.T) {
	_, err := ParsePolicy([]byte("route_value: 3\n"))
	assert.Error(t, err)

	p, err := ParsePolicy(nil)
	require.NoError(t, err)
	assert.Nil(t, p.RouteTimeValuePerHour)
}

func TestPolicyRejectsNegativeWeights(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supplier_weights: {quality: -1, lead_time: 1, cost: 1}\n"), 0o600))
	t.Setenv("PLANNING_POLICY_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
