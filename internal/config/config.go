// Package config loads cancerreg settings from defaults, an optional YAML
// file and CANCERREG_* environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/pipeline"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
	"github.com/YuminosukeSato/cancerreg/preprocessing"
)

// EnvPrefix is the prefix of environment overrides, e.g. CANCERREG_ALPHA.
const EnvPrefix = "CANCERREG"

// Config is the effective configuration of one invocation.
type Config struct {
	Data     string   `mapstructure:"data" yaml:"data"`
	Features []string `mapstructure:"features" yaml:"features"`
	Target   string   `mapstructure:"target" yaml:"target"`

	Repetitions  int     `mapstructure:"repetitions" yaml:"repetitions"`
	Alpha        float64 `mapstructure:"alpha" yaml:"alpha"`
	TestSize     float64 `mapstructure:"test_size" yaml:"test_size"`
	EvalSize     float64 `mapstructure:"eval_size" yaml:"eval_size"`
	Seed         uint64  `mapstructure:"seed" yaml:"seed"`
	BiasStrategy string  `mapstructure:"bias_strategy" yaml:"bias_strategy"`
	Holdout      string  `mapstructure:"holdout" yaml:"holdout"`
	LabelBasis   string  `mapstructure:"label_basis" yaml:"label_basis"`
	ZeroVariance string  `mapstructure:"zero_variance" yaml:"zero_variance"`

	// Charts are written only when PlotDir is set
	PlotDir        string `mapstructure:"plot_dir" yaml:"plot_dir"`
	ScatterColumns int    `mapstructure:"scatter_columns" yaml:"scatter_columns"`

	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogBackend string `mapstructure:"log_backend" yaml:"log_backend"`
}

func setDefaults(v *viper.Viper) {
	d := pipeline.DefaultConfig()
	v.SetDefault("data", "cancer_reg.csv")
	v.SetDefault("features", dataset.DefaultFeatures)
	v.SetDefault("target", dataset.TargetColumn)
	v.SetDefault("repetitions", d.Repetitions)
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("test_size", d.TestSize)
	v.SetDefault("eval_size", d.EvalSize)
	v.SetDefault("seed", 0)
	v.SetDefault("bias_strategy", string(d.BiasStrategy))
	v.SetDefault("holdout", string(d.Holdout))
	v.SetDefault("label_basis", string(d.LabelBasis))
	v.SetDefault("zero_variance", d.ZeroVariance.String())
	v.SetDefault("plot_dir", "")
	v.SetDefault("scatter_columns", 6)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_backend", "zerolog")
}

// Load loads configuration from defaults, config file and env.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
//
// An explicit cfgFile must exist. Without one, ./cancerreg.yaml and
// ~/.cancerreg/config.yaml are tried in that order and may be absent.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	} else {
		v.SetConfigName("cancerreg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cancerreg"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &c, nil
}

// Pipeline converts the settings into a pipeline.Config.
func (c *Config) Pipeline() (pipeline.Config, error) {
	zv, err := preprocessing.ParseZeroVariancePolicy(c.ZeroVariance)
	if err != nil {
		return pipeline.Config{}, err
	}
	pc := pipeline.Config{
		Repetitions:  c.Repetitions,
		Alpha:        c.Alpha,
		TestSize:     c.TestSize,
		EvalSize:     c.EvalSize,
		Seed:         c.Seed,
		BiasStrategy: pipeline.BiasStrategy(c.BiasStrategy),
		Holdout:      pipeline.HoldoutStrategy(c.Holdout),
		LabelBasis:   pipeline.LabelBasis(c.LabelBasis),
		ZeroVariance: zv,
	}
	return pc, pc.Validate()
}

// Validate checks every setting and returns the first ConfigError.
func (c *Config) Validate() error {
	if _, err := c.Pipeline(); err != nil {
		return err
	}
	if len(c.Features) == 0 {
		return errors.NewConfigError("features", "at least one feature column is required", c.Features)
	}
	seen := make(map[string]bool, len(c.Features))
	for _, f := range c.Features {
		if seen[f] {
			return errors.NewConfigError("features", "duplicate feature column", f)
		}
		seen[f] = true
	}
	if c.Target == "" || seen[c.Target] {
		return errors.NewConfigError("target", "must be set and distinct from the features", c.Target)
	}
	if c.ScatterColumns < 1 {
		return errors.NewConfigError("scatter_columns", "must be at least 1", c.ScatterColumns)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogBackend {
	case "slog", "zerolog":
	default:
		return errors.NewConfigError("log_backend", "must be one of slog, zerolog", c.LogBackend)
	}
	return nil
}

// YAML returns the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshal yaml")
	}
	return b, nil
}

// Save writes the configuration to path as YAML.
func Save(c *Config, path string) error {
	b, err := c.YAML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir config dir")
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
