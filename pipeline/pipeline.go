// Package pipeline は分割・正規化・リッジ回帰を繰り返し、重みを平均した
// 最終モデルを作る。
//
// 使用例:
//
//	runner, err := pipeline.NewRunner(pipeline.DefaultConfig(), pipeline.WithLogger(logger))
//	res, err := runner.Run(ds)
//	eval, err := res.Evaluate()
//	table, err := pipeline.Correlate(ds, res.Model, pipeline.LabelByWeight)
package pipeline

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/linear"
	"github.com/YuminosukeSato/cancerreg/metrics"
	"github.com/YuminosukeSato/cancerreg/modelselection"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
	"github.com/YuminosukeSato/cancerreg/preprocessing"
)

// Result は Run の出力
type Result struct {
	RunID string
	// Seed は実際に使われた乱数シード（再現用）
	Seed  uint64
	Runs  []RunResult
	Model *FinalModel

	// Data はシャッフル後のデータ。RunResult.Split の添字はこの行を指す
	Data *dataset.Dataset

	// 最後の反復のテストデータ（未正規化）と、その反復で学習したスケーラー
	TestX  *mat.Dense
	TestY  *mat.VecDense
	Scaler *preprocessing.StandardScaler
}

// Evaluate は最後の反復のテストデータで最終モデルを評価する
func (r *Result) Evaluate() (Evaluation, error) {
	return Evaluate(r.Model, r.Scaler, r.TestX, r.TestY)
}

// Runner は反復学習を実行する
type Runner struct {
	cfg    Config
	logger log.Logger
	rng    *rand.Rand
}

// Option は Runner の設定関数
type Option func(*Runner)

// WithLogger はロガーを設定する
func WithLogger(logger log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRand は Config.Seed の代わりに外部の乱数源を使う
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) {
		r.rng = rng
	}
}

// NewRunner は設定を検証して Runner を作成する
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, logger: log.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run はデータを一度シャッフルし、Repetitions 回の分割・学習を行って
// 最終モデルを作る。途中の反復が失敗した場合は部分的な結果を返さない
func (r *Runner) Run(ds *dataset.Dataset) (*Result, error) {
	seed := r.cfg.Seed
	rng := r.rng
	if rng == nil {
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	runID := uuid.NewString()
	logger := r.logger.With(
		log.RunIDKey, runID,
		log.ModelNameKey, "Ridge",
	)
	logger.Info("pipeline started",
		log.RepetitionsKey, r.cfg.Repetitions,
		log.RegularizationKey, r.cfg.Alpha,
		log.RandomSeedKey, seed,
		log.BiasStrategyKey, string(r.cfg.BiasStrategy),
		log.HoldoutKey, string(r.cfg.Holdout),
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NFeatures(),
	)

	data := ds.Shuffle(rng)

	splitter, err := modelselection.NewSplitter(r.cfg.TestSize, r.cfg.EvalSize, modelselection.WithRand(rng))
	if err != nil {
		return nil, err
	}

	var fixed *modelselection.Split
	if r.cfg.Holdout == HoldoutFixed {
		all := make([]int, data.Len())
		for i := range all {
			all[i] = i
		}
		rest, test, err := modelselection.TrainTestSplit(all, r.cfg.TestSize, rng)
		if err != nil {
			return nil, errors.Wrap(err, "fixed holdout")
		}
		fixed = &modelselection.Split{Train: rest, Test: test}
	}

	runs := make([]RunResult, 0, r.cfg.Repetitions)
	var scaler *preprocessing.StandardScaler
	for rep := 1; rep <= r.cfg.Repetitions; rep++ {
		split, err := r.split(splitter, data.Len(), fixed)
		if err != nil {
			return nil, errors.Wrapf(err, "repetition %d", rep)
		}
		logger.Debug("split drawn",
			log.OperationKey, log.OperationSplit,
			log.RepetitionKey, rep,
			log.TrainSizeKey, len(split.Train),
			log.EvalSizeKey, len(split.Eval),
			log.TestSizeKey, len(split.Test),
		)

		run, s, err := r.runOnce(rep, data, split, logger)
		if err != nil {
			logger.Error("repetition failed", err, log.RepetitionKey, rep)
			return nil, errors.Wrapf(err, "repetition %d", rep)
		}
		runs = append(runs, run)
		scaler = s
	}

	model, err := Aggregate(runs, r.cfg.BiasStrategy, data.Features)
	if err != nil {
		return nil, err
	}
	logger.Info("model aggregated",
		log.OperationKey, log.OperationAggregate,
		log.RepetitionsKey, len(runs),
		log.BiasKey, model.Bias(),
	)

	last := runs[len(runs)-1].Split
	testX, testY := data.Subset(last.Test)

	return &Result{
		RunID:  runID,
		Seed:   seed,
		Runs:   runs,
		Model:  model,
		Data:   data,
		TestX:  testX,
		TestY:  testY,
		Scaler: scaler,
	}, nil
}

func (r *Runner) split(splitter *modelselection.Splitter, n int, fixed *modelselection.Split) (modelselection.Split, error) {
	if fixed == nil {
		return splitter.Split(n)
	}
	train, eval, err := splitter.SplitRemainder(fixed.Train)
	if err != nil {
		return modelselection.Split{}, err
	}
	return modelselection.Split{Train: train, Eval: eval, Test: fixed.Test}, nil
}

// runOnce は一回分の正規化・学習・検証を行う。スケーラーはこの反復専用
func (r *Runner) runOnce(rep int, data *dataset.Dataset, split modelselection.Split, logger log.Logger) (RunResult, *preprocessing.StandardScaler, error) {
	start := time.Now()

	XTrain, yTrain := data.Subset(split.Train)
	XEval, yEval := data.Subset(split.Eval)

	scaler := preprocessing.NewStandardScaler(
		preprocessing.WithZeroVariance(r.cfg.ZeroVariance),
		preprocessing.WithFeatureNames(data.Features),
	)
	XTrainNorm, err := scaler.FitTransform(XTrain)
	if err != nil {
		return RunResult{}, nil, err
	}
	XEvalNorm, err := scaler.Transform(XEval)
	if err != nil {
		return RunResult{}, nil, err
	}

	ridge, err := linear.NewRidge(r.cfg.Alpha,
		linear.WithFeatureNames(data.Features),
		linear.WithTargetName(data.Target),
	)
	if err != nil {
		return RunResult{}, nil, err
	}
	if err := ridge.Fit(XTrainNorm, yTrain); err != nil {
		return RunResult{}, nil, err
	}

	trainMean := stat.Mean(yTrain.RawVector().Data, nil)

	// 検証用の予測にはこの反復の訓練平均をバイアスとして足す
	pred, err := ridge.Predict(XEvalNorm)
	if err != nil {
		return RunResult{}, nil, err
	}
	for i := 0; i < pred.Len(); i++ {
		pred.SetVec(i, pred.AtVec(i)+trainMean)
	}
	report, err := metrics.Evaluate(yEval, pred)
	if err != nil {
		return RunResult{}, nil, err
	}

	logger.Info("repetition finished",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseValidation,
		log.RepetitionKey, rep,
		log.TrainSizeKey, len(split.Train),
		log.EvalSizeKey, len(split.Eval),
		log.TestSizeKey, len(split.Test),
		log.RMSEKey, logFloat(report.RMSE),
		log.R2ScoreKey, logFloat(report.R2),
		log.MAEKey, logFloat(report.MAE),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return RunResult{
		Repetition: rep,
		Coef:       ridge.Coef(),
		TrainMean:  trainMean,
		Split:      split,
		Eval:       report,
	}, scaler, nil
}

// logFloat は JSON にできない NaN/Inf を文字列にする
func logFloat(v float64) any {
	if errors.IsFinite(v) {
		return v
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
