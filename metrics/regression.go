// Package metrics は回帰モデルの評価指標と特徴量の相関を計算する。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func checkPair(op string, yTrue, yPred mat.Vector) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
// yTrue の分散が0の場合は定義できないため ValueError を返す
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		d := yTrueVal - yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += d * d
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// Pearson は2つの系列のピアソン相関係数を計算する
// どちらかの分散が0の場合は NaN を返す（相関が定義できないため）
func Pearson(x, y []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errors.NewValueError("Pearson", "empty vector")
	}
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("Pearson", len(x), len(y), 0)
	}
	if len(x) < 2 {
		return math.NaN(), nil
	}
	return stat.Correlation(x, y, nil), nil
}

// RegressionReport は一つの分割に対する評価指標の組
type RegressionReport struct {
	N    int
	RMSE float64
	R2   float64
	MAE  float64
}

// Evaluate は RMSE・R²・MAE をまとめて計算する
// R² が定義できない場合は NaN とし、UndefinedMetricWarning を発生させる
func Evaluate(yTrue, yPred mat.Vector) (RegressionReport, error) {
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return RegressionReport{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return RegressionReport{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			return RegressionReport{}, err
		}
		r2 = math.NaN()
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "no variance in yTrue", r2))
	}
	return RegressionReport{N: yTrue.Len(), RMSE: rmse, R2: r2, MAE: mae}, nil
}
