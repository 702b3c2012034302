package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cancerreg/core/model"
	"github.com/YuminosukeSato/cancerreg/metrics"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// Evaluation はテストデータでの最終評価
type Evaluation = metrics.RegressionReport

// Evaluate は学習済みの scaler でテストデータを変換し、最終モデルの予測を評価する
// 再学習は行わず、m と scaler は変更しない
func Evaluate(m *FinalModel, scaler model.Transformer, X *mat.Dense, y *mat.VecDense) (Evaluation, error) {
	if m == nil || scaler == nil {
		return Evaluation{}, errors.NewValueError("pipeline.Evaluate", "model and scaler are required")
	}
	if y == nil || y.Len() == 0 {
		return Evaluation{}, errors.NewDataError("pipeline.Evaluate", "", "empty test split")
	}

	XNorm, err := scaler.Transform(X)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "pipeline.Evaluate")
	}
	pred, err := m.Predict(XNorm)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "pipeline.Evaluate")
	}
	return metrics.Evaluate(y, pred)
}
