package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/cancerreg/metrics"
	"github.com/YuminosukeSato/cancerreg/modelselection"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// RunResult は一回の反復で得られた結果
type RunResult struct {
	// Repetition は1始まりの反復番号
	Repetition int
	// Coef は正規化済み特徴量に対するリッジ回帰の重み
	Coef []float64
	// TrainMean は訓練データの目的変数平均
	TrainMean float64
	Split     modelselection.Split
	// Eval は検証データでの評価（記録用）
	Eval metrics.RegressionReport
}

// FinalModel は全反復の重みを平均したモデル。作成後は変更されない
type FinalModel struct {
	features []string
	coef     []float64
	bias     float64
}

// NewFinalModel は重みとバイアスから最終モデルを作る
func NewFinalModel(features []string, coef []float64, bias float64) (*FinalModel, error) {
	if len(coef) != len(features) {
		return nil, errors.NewDimensionError("NewFinalModel", len(features), len(coef), 1)
	}
	if err := errors.CheckVector("NewFinalModel", "coef", coef); err != nil {
		return nil, err
	}
	if !errors.IsFinite(bias) {
		return nil, errors.NewNumericalError("NewFinalModel", "", "bias is not finite", nil)
	}
	return &FinalModel{
		features: append([]string(nil), features...),
		coef:     append([]float64(nil), coef...),
		bias:     bias,
	}, nil
}

// Coef は重みのコピーを返す
func (m *FinalModel) Coef() []float64 {
	return append([]float64(nil), m.coef...)
}

// Bias はバイアスを返す
func (m *FinalModel) Bias() float64 {
	return m.bias
}

// Features は重みの順に並んだ特徴量名を返す
func (m *FinalModel) Features() []string {
	return append([]string(nil), m.features...)
}

// Predict は正規化済みの X に対して Xw + bias を返す
func (m *FinalModel) Predict(X mat.Matrix) (*mat.VecDense, error) {
	r, c := X.Dims()
	if c != len(m.coef) {
		return nil, errors.NewDimensionError("FinalModel.Predict", len(m.coef), c, 1)
	}
	if r == 0 {
		return nil, errors.NewDataError("FinalModel.Predict", "", "no rows to predict")
	}

	pred := mat.NewVecDense(r, nil)
	pred.MulVec(X, mat.NewVecDense(len(m.coef), m.Coef()))
	for i := 0; i < r; i++ {
		pred.SetVec(i, pred.AtVec(i)+m.bias)
	}
	return pred, nil
}

// Aggregate は各反復の重みを要素ごとに平均し、strategy に従ってバイアスを決める
func Aggregate(runs []RunResult, strategy BiasStrategy, features []string) (*FinalModel, error) {
	if len(runs) == 0 {
		return nil, errors.NewConfigError("repetitions", "must be at least 1", 0)
	}

	sum := make([]float64, len(features))
	means := make([]float64, len(runs))
	for i, run := range runs {
		if len(run.Coef) != len(features) {
			return nil, errors.Wrapf(
				errors.NewDimensionError("Aggregate", len(features), len(run.Coef), 1),
				"repetition %d", run.Repetition)
		}
		floats.Add(sum, run.Coef)
		means[i] = run.TrainMean
	}
	floats.Scale(1/float64(len(runs)), sum)

	var bias float64
	switch strategy {
	case BiasLastRun:
		bias = runs[len(runs)-1].TrainMean
	case BiasAveraged:
		bias = stat.Mean(means, nil)
	default:
		return nil, errors.NewConfigError("bias_strategy", "must be one of last_run, averaged", strategy)
	}

	return NewFinalModel(features, sum, bias)
}
