package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/pipeline"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/preprocessing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 10, c.Repetitions)
	assert.Equal(t, 1.0, c.Alpha)
	assert.Equal(t, 0.1, c.TestSize)
	assert.Equal(t, 0.1, c.EvalSize)
	assert.Equal(t, uint64(0), c.Seed)
	assert.Equal(t, "last_run", c.BiasStrategy)
	assert.Equal(t, "per_repetition", c.Holdout)
	assert.Equal(t, "weight", c.LabelBasis)
	assert.Equal(t, "error", c.ZeroVariance)
	assert.Equal(t, dataset.DefaultFeatures, c.Features)
	assert.Equal(t, dataset.TargetColumn, c.Target)

	pc, err := c.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), pc)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repetitions: 25
alpha: 0.5
bias_strategy: averaged
features: [incidenceRate, povertyPercent]
zero_variance: unit
`), 0o600))

	t.Setenv("CANCERREG_ALPHA", "3.5")
	t.Setenv("CANCERREG_SEED", "1234")

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 25, c.Repetitions)
	assert.Equal(t, 3.5, c.Alpha, "env overrides file")
	assert.Equal(t, uint64(1234), c.Seed)
	assert.Equal(t, []string{"incidenceRate", "povertyPercent"}, c.Features)

	pc, err := c.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, pipeline.BiasAveraged, pc.BiasStrategy)
	assert.Equal(t, preprocessing.ZeroVarianceUnit, pc.ZeroVariance)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		modify func(*Config)
		param  string
	}{
		{"repetitions", func(c *Config) { c.Repetitions = 0 }, "repetitions"},
		{"test size", func(c *Config) { c.TestSize = 1.2 }, "test_size"},
		{"holdout", func(c *Config) { c.Holdout = "rolling" }, "holdout"},
		{"zero variance", func(c *Config) { c.ZeroVariance = "drop" }, "zero_variance"},
		{"no features", func(c *Config) { c.Features = nil }, "features"},
		{"duplicate feature", func(c *Config) { c.Features = []string{"a", "a"} }, "features"},
		{"target in features", func(c *Config) { c.Target = c.Features[0] }, "target"},
		{"scatter columns", func(c *Config) { c.ScatterColumns = 0 }, "scatter_columns"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"log backend", func(c *Config) { c.LogBackend = "logrus" }, "log_backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load("")
			require.NoError(t, err)
			tt.modify(c)

			err = c.Validate()
			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.param, cfgErr.Param)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	c.Seed = 99
	c.PlotDir = "charts"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(c, path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)

	b, err := c.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(b), "bias_strategy: last_run")
}
