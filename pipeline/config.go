package pipeline

import (
	"math"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/preprocessing"
)

// BiasStrategy は最終モデルのバイアスの決め方
type BiasStrategy string

const (
	// BiasLastRun は最後の反復の訓練データの目的変数平均を使う
	BiasLastRun BiasStrategy = "last_run"
	// BiasAveraged は各反復の訓練データの目的変数平均をさらに平均する
	BiasAveraged BiasStrategy = "averaged"
)

// HoldoutStrategy はテストデータの取り方
type HoldoutStrategy string

const (
	// HoldoutPerRepetition は反復ごとにテストデータを引き直す
	HoldoutPerRepetition HoldoutStrategy = "per_repetition"
	// HoldoutFixed はループ前に一度だけテストデータを取り分ける
	HoldoutFixed HoldoutStrategy = "fixed"
)

// LabelBasis は相関レポートの "positive"/"negative" を何の符号で決めるか
type LabelBasis string

const (
	// LabelByWeight は最終モデルの重みの符号を使う
	LabelByWeight LabelBasis = "weight"
	// LabelByCorrelation はピアソン相関係数の符号を使う
	LabelByCorrelation LabelBasis = "correlation"
)

// Config は反復学習の設定
type Config struct {
	Repetitions int
	Alpha       float64
	TestSize    float64
	EvalSize    float64

	// Seed が0のときは実行ごとにランダムなシードを使う
	Seed uint64

	BiasStrategy BiasStrategy
	Holdout      HoldoutStrategy
	LabelBasis   LabelBasis
	ZeroVariance preprocessing.ZeroVariancePolicy
}

// DefaultConfig は元の分析と同じ設定を返す
func DefaultConfig() Config {
	return Config{
		Repetitions:  10,
		Alpha:        1.0,
		TestSize:     0.1,
		EvalSize:     0.1,
		BiasStrategy: BiasLastRun,
		Holdout:      HoldoutPerRepetition,
		LabelBasis:   LabelByWeight,
		ZeroVariance: preprocessing.ZeroVarianceError,
	}
}

// Validate は設定値を検証し、最初に見つかった問題を ConfigError で返す
func (c Config) Validate() error {
	if c.Repetitions < 1 {
		return errors.NewConfigError("repetitions", "must be at least 1", c.Repetitions)
	}
	if math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) || c.Alpha < 0 {
		return errors.NewConfigError("alpha", "must be a finite non-negative number", c.Alpha)
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return errors.NewConfigError("test_size", "must be in the open interval (0, 1)", c.TestSize)
	}
	if !(c.EvalSize > 0 && c.EvalSize < 1) {
		return errors.NewConfigError("eval_size", "must be in the open interval (0, 1)", c.EvalSize)
	}
	switch c.BiasStrategy {
	case BiasLastRun, BiasAveraged:
	default:
		return errors.NewConfigError("bias_strategy", "must be one of last_run, averaged", c.BiasStrategy)
	}
	switch c.Holdout {
	case HoldoutPerRepetition, HoldoutFixed:
	default:
		return errors.NewConfigError("holdout", "must be one of per_repetition, fixed", c.Holdout)
	}
	switch c.LabelBasis {
	case LabelByWeight, LabelByCorrelation:
	default:
		return errors.NewConfigError("label_basis", "must be one of weight, correlation", c.LabelBasis)
	}
	switch c.ZeroVariance {
	case preprocessing.ZeroVarianceError, preprocessing.ZeroVarianceUnit:
	default:
		return errors.NewConfigError("zero_variance", "must be one of error, unit", int(c.ZeroVariance))
	}
	return nil
}
