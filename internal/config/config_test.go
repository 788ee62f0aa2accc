package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRates(t *testing.T) {
	rates, err := ParseRates("0.01, 0.05,0.1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.05, 0.1}, rates)

	rates, err = ParseRates("0.2,,")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2}, rates)

	_, err = ParseRates("0.1,abc")
	assert.Error(t, err)

	_, err = ParseRates("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Rates: []float64{0, 0.5, 1}, Trials: 10, Confidence: 0.95}
	assert.NoError(t, valid.Validate())

	negativeTrials := valid
	negativeTrials.Trials = -1
	assert.Error(t, negativeTrials.Validate())

	badConfidence := valid
	badConfidence.Confidence = 1
	assert.Error(t, badConfidence.Validate())

	badRate := valid
	badRate.Rates = []float64{0.1, 1.2}
	assert.Error(t, badRate.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIVEQUBIT_RATES", "")
	t.Setenv("FIVEQUBIT_TRIALS", "")
	t.Setenv("FIVEQUBIT_CONFIDENCE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.05, 0.1}, cfg.Rates)
	assert.Equal(t, 1000, cfg.Trials)
	assert.Equal(t, 0.95, cfg.Confidence)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FIVEQUBIT_RATES", "0.02,0.2")
	t.Setenv("FIVEQUBIT_TRIALS", "250")
	t.Setenv("FIVEQUBIT_SEED", "77")
	t.Setenv("FIVEQUBIT_PRETTY", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.02, 0.2}, cfg.Rates)
	assert.Equal(t, 250, cfg.Trials)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.False(t, cfg.Pretty)
}
