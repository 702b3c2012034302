// Package cli wires the cancerreg commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/cancerreg/internal/config"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags
	cfgFile    string
	logLevel   string
	logBackend string

	// Loaded configuration
	cfg    *config.Config
	logger log.Logger
}

// NewRootCmd builds a fresh command tree. Tests create one per invocation so
// that flag state never leaks between runs.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: log.Nop()}

	root := &cobra.Command{
		Use:   "cancerreg",
		Short: "Repeated-split ridge regression on county cancer mortality data",
		Long: `cancerreg fits a ridge regression on TARGET_deathRate over many random
train/eval/test splits, averages the coefficients into one final model,
evaluates it on the last held-out test split and reports how each feature
relates to the target.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./cancerreg.yaml or ~/.cancerreg/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&a.logBackend, "log-backend", "", "log backend: slog or zerolog (overrides config)")

	root.AddCommand(a.newRunCmd(), a.newScatterCmd(), a.newConfigCmd())
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = c

	// Apply CLI overrides if provided
	f := cmd.Root().PersistentFlags()
	if f.Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if f.Changed("log-backend") {
		a.cfg.LogBackend = a.logBackend
	}

	logger, err := newLogger(a.cfg, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// newLogger builds the configured backend and routes library warnings to it.
func newLogger(c *config.Config, w io.Writer) (log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	switch c.LogBackend {
	case "slog":
		l := log.NewSlogLogger(w, level)
		errors.SetZerologWarnFunc(nil)
		errors.SetWarningHandler(func(warn error) {
			l.Warn(warn.Error(), "warning", warn.Error())
		})
		return l, nil
	case "zerolog", "":
		l := log.NewZerologLogger(w, level)
		l.InstallWarnings()
		return l, nil
	default:
		return nil, errors.NewConfigError("log_backend", "must be one of slog, zerolog", c.LogBackend)
	}
}
