package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/pipeline"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
	"github.com/YuminosukeSato/cancerreg/report"
)

const (
	scatterFile     = "scatter.png"
	correlationFile = "correlation_weight.png"
)

type runFlags struct {
	data         string
	repetitions  int
	alpha        float64
	testSize     float64
	evalSize     float64
	seed         uint64
	biasStrategy string
	holdout      string
	labelBasis   string
	zeroVariance string
	plotDir      string
}

func (a *app) newRunCmd() *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train the averaged ridge model and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.applyRunFlags(cmd, &rf)
			if err := a.run(); err != nil {
				a.logger.Error("run failed", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&rf.data, "data", "", "input CSV (.csv or .csv.xz)")
	f.IntVar(&rf.repetitions, "repetitions", 0, "number of resampling repetitions")
	f.Float64Var(&rf.alpha, "alpha", 0, "ridge regularization strength")
	f.Float64Var(&rf.testSize, "test-size", 0, "fraction of rows held out for testing")
	f.Float64Var(&rf.evalSize, "eval-size", 0, "fraction of the remainder used for evaluation")
	f.Uint64Var(&rf.seed, "seed", 0, "random seed (0 = random)")
	f.StringVar(&rf.biasStrategy, "bias-strategy", "", "last_run or averaged")
	f.StringVar(&rf.holdout, "holdout", "", "per_repetition or fixed")
	f.StringVar(&rf.labelBasis, "label-basis", "", "weight or correlation")
	f.StringVar(&rf.zeroVariance, "zero-variance", "", "error or unit")
	f.StringVar(&rf.plotDir, "plot-dir", "", "write charts to this directory")
	return cmd
}

func (a *app) applyRunFlags(cmd *cobra.Command, rf *runFlags) {
	f := cmd.Flags()
	if f.Changed("data") {
		a.cfg.Data = rf.data
	}
	if f.Changed("repetitions") {
		a.cfg.Repetitions = rf.repetitions
	}
	if f.Changed("alpha") {
		a.cfg.Alpha = rf.alpha
	}
	if f.Changed("test-size") {
		a.cfg.TestSize = rf.testSize
	}
	if f.Changed("eval-size") {
		a.cfg.EvalSize = rf.evalSize
	}
	if f.Changed("seed") {
		a.cfg.Seed = rf.seed
	}
	if f.Changed("bias-strategy") {
		a.cfg.BiasStrategy = rf.biasStrategy
	}
	if f.Changed("holdout") {
		a.cfg.Holdout = rf.holdout
	}
	if f.Changed("label-basis") {
		a.cfg.LabelBasis = rf.labelBasis
	}
	if f.Changed("zero-variance") {
		a.cfg.ZeroVariance = rf.zeroVariance
	}
	if f.Changed("plot-dir") {
		a.cfg.PlotDir = rf.plotDir
	}
}

func (a *app) run() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	pc, err := a.cfg.Pipeline()
	if err != nil {
		return err
	}

	ds, _, err := dataset.Load(a.cfg.Data,
		dataset.WithFeatures(a.cfg.Features),
		dataset.WithTarget(a.cfg.Target),
		dataset.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(pc, pipeline.WithLogger(a.logger))
	if err != nil {
		return err
	}
	res, err := runner.Run(ds)
	if err != nil {
		return err
	}
	if err := report.WriteRuns(a.stdout, res.Runs); err != nil {
		return err
	}

	eval, err := res.Evaluate()
	if err != nil {
		return err
	}
	a.logger.Info("final model evaluated",
		log.RunIDKey, res.RunID,
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseTesting,
		log.TestSizeKey, eval.N,
		log.RMSEKey, eval.RMSE,
		log.MAEKey, eval.MAE,
	)
	if err := report.WriteEvaluation(a.stdout, eval, res.Model); err != nil {
		return err
	}

	table, err := pipeline.Correlate(ds, res.Model, pc.LabelBasis)
	if err != nil {
		return err
	}
	a.logger.Debug("correlations computed",
		log.RunIDKey, res.RunID,
		log.OperationKey, log.OperationCorrelate,
		log.FeaturesKey, len(table),
	)
	if err := report.WriteCorrelations(a.stdout, table); err != nil {
		return err
	}

	if a.cfg.PlotDir == "" {
		return nil
	}
	if err := os.MkdirAll(a.cfg.PlotDir, 0o755); err != nil {
		return errors.Wrap(err, "create plot dir")
	}
	scatter := filepath.Join(a.cfg.PlotDir, scatterFile)
	if err := report.ScatterGrid(ds, a.cfg.ScatterColumns, scatter); err != nil {
		return err
	}
	bars := filepath.Join(a.cfg.PlotDir, correlationFile)
	if err := report.CorrelationBars(table, bars); err != nil {
		return err
	}
	a.logger.Info("charts written", "scatter", scatter, "correlation", bars)
	return nil
}
