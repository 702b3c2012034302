// Package linear は切片なしのリッジ回帰を提供する。
package linear

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/cancerreg/core/model"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Ridge は L2 正則化付きの線形回帰モデル（切片なし）
// ||y - Xw||² + α||w||² を最小化する
type Ridge struct {
	model.BaseEstimator

	alpha      float64
	targetName string
	coef       *mat.VecDense
}

// NewRidge は新しいリッジ回帰モデルを作成する
// alpha が負または NaN の場合は ConfigError を返す
func NewRidge(alpha float64, opts ...Option) (*Ridge, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return nil, errors.NewConfigError("alpha", "must be a finite non-negative number", alpha)
	}
	r := &Ridge{alpha: alpha, targetName: "y"}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Alpha は正則化強度を返す
func (r *Ridge) Alpha() float64 {
	return r.alpha
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 (XᵀX + αI)w = Xᵀy をコレスキー分解で解く
func (r *Ridge) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Ridge.Fit")

	n, c := X.Dims()
	ny, cy := y.Dims()

	if n == 0 || c == 0 {
		return errors.NewDataError("Ridge.Fit", "", "empty training data")
	}
	if ny != n {
		return errors.NewDimensionError("Ridge.Fit", n, ny, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Ridge.Fit", "y must be a column vector")
	}

	r.Reset()
	r.coef = nil

	if err := errors.CheckMatrix("Ridge.Fit", X, n, c, r.FeatureNames()); err != nil {
		return err
	}
	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}
	if err := errors.CheckVector("Ridge.Fit", r.targetName, yVec.RawVector().Data); err != nil {
		return err
	}

	// XᵀX + αI（対称行列）
	var gram mat.SymDense
	gram.SymOuterK(1, X.T())
	for j := 0; j < c; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.alpha)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), yVec)

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return errors.NewNumericalError("Ridge.Fit", "",
			fmt.Sprintf("normal equations are not positive definite (alpha=%g)", r.alpha), errors.ErrSingularMatrix)
	}

	coef := mat.NewVecDense(c, nil)
	if err := chol.SolveVecTo(coef, &xty); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return errors.NewNumericalError("Ridge.Fit", "", "cholesky solve failed", err)
		}
		// 解は得られているが精度が落ちている可能性がある
		errors.Warn(errors.NewIllConditionedWarning("Ridge.Fit", float64(cond)))
	}
	if err := errors.CheckVector("Ridge.Fit", "coef", coef.RawVector().Data); err != nil {
		return err
	}

	r.coef = coef
	r.SetFitted(c)
	return nil
}

// Predict は Xw を返す
func (r *Ridge) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := r.CheckFitted("Ridge", "Predict"); err != nil {
		return nil, err
	}

	n, c := X.Dims()
	if err := r.CheckFeatures("Ridge.Predict", c); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.NewDataError("Ridge.Predict", "", "no rows to predict")
	}

	predictions := mat.NewVecDense(n, nil)
	predictions.MulVec(X, r.coef)
	return predictions, nil
}

// Coef は学習された重み（係数）のコピーを返す
func (r *Ridge) Coef() []float64 {
	if r.coef == nil {
		return nil
	}
	out := make([]float64, r.coef.Len())
	copy(out, r.coef.RawVector().Data)
	return out
}

// Intercept は常に0を返す（切片は学習しない）
func (r *Ridge) Intercept() float64 {
	return 0
}

// String はモデルの文字列表現を返す
func (r *Ridge) String() string {
	if !r.IsFitted() {
		return fmt.Sprintf("Ridge(alpha=%g)", r.alpha)
	}
	return fmt.Sprintf("Ridge(alpha=%g, n_features=%d)", r.alpha, r.NFeatures())
}

var _ model.Regressor = (*Ridge)(nil)
