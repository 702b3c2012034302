// Package preprocessing は特徴量の標準化を提供する。
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/cancerreg/core/model"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ZeroVariancePolicy は訓練データで標準偏差が0の列の扱いを決める
type ZeroVariancePolicy int

const (
	// ZeroVarianceError は NumericalError を返す（デフォルト）
	ZeroVarianceError ZeroVariancePolicy = iota
	// ZeroVarianceUnit は標準偏差を1に置き換える（scikit-learn と同じ挙動）
	ZeroVarianceUnit
)

// isConstant は分散が丸め誤差の範囲に収まるかを判定する
// 上限は scikit-learn の _is_constant_feature と同じで、列のスケールに比例する
func isConstant(variance, mean float64, n int) bool {
	const eps = 0x1p-52
	nf := float64(n)
	bound := nf*eps*variance + (nf*mean*eps)*(nf*mean*eps)
	return variance <= bound
}

// ParseZeroVariancePolicy は設定文字列をポリシーに変換する
func ParseZeroVariancePolicy(s string) (ZeroVariancePolicy, error) {
	switch s {
	case "error", "":
		return ZeroVarianceError, nil
	case "unit":
		return ZeroVarianceUnit, nil
	default:
		return ZeroVarianceError, errors.NewConfigError("zero_variance", "must be one of error, unit", s)
	}
}

// String は設定ファイルで使う名前を返す
func (p ZeroVariancePolicy) String() string {
	if p == ZeroVarianceUnit {
		return "unit"
	}
	return "error"
}

// StandardScaler はscikit-learn互換の標準化スケーラー
// 訓練データから平均と母標準偏差（ddof=0）を学習し、(x - mean) / std を適用する
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// ZeroVariance は分散0の列の扱い
	ZeroVariance ZeroVariancePolicy
}

// Option は StandardScaler の設定関数
type Option func(*StandardScaler)

// WithZeroVariance は分散0の列の扱いを設定する
func WithZeroVariance(p ZeroVariancePolicy) Option {
	return func(s *StandardScaler) {
		s.ZeroVariance = p
	}
}

// WithFeatureNames はエラーメッセージに使う列名を設定する
func WithFeatureNames(names []string) Option {
	return func(s *StandardScaler) {
		s.SetFeatureNames(names)
	}
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(preprocessing.WithFeatureNames(names))
//	XTrain, err := scaler.FitTransform(XTrainRaw)
//	XEval, err := scaler.Transform(XEvalRaw)
func NewStandardScaler(opts ...Option) *StandardScaler {
	s := &StandardScaler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
// 再度呼び出すと以前の統計情報は破棄される
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewDataError("StandardScaler.Fit", "", "empty training data")
	}
	s.Reset()

	if err := errors.CheckMatrix("StandardScaler.Fit", X, r, c, s.FeatureNames()); err != nil {
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		mean[j] = sum / float64(r)

		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - mean[j]
			sumSquares += diff * diff
		}
		variance := sumSquares / float64(r)
		scale[j] = math.Sqrt(variance)

		if isConstant(variance, mean[j], r) {
			if s.ZeroVariance == ZeroVarianceError {
				return errors.NewNumericalError("StandardScaler.Fit", s.FeatureName(j),
					fmt.Sprintf("zero variance in training data (std=%g over %d rows)", scale[j], r), nil)
			}
			scale[j] = 1.0
		}
	}

	s.Mean = mean
	s.Scale = scale
	s.SetFitted(c)
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
// 統計情報は更新しない
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.CheckFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if err := s.CheckFeatures("StandardScaler.Transform", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewDataError("StandardScaler.Transform", "", "no rows to transform")
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(zero_variance=%s)", s.ZeroVariance)
	}
	return fmt.Sprintf("StandardScaler(zero_variance=%s, n_features=%d)", s.ZeroVariance, s.NFeatures())
}
