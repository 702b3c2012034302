package model

import "gonum.org/v1/gonum/mat"

// Fitter は教師あり学習が可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる（y は n×1 行列またはベクトル）
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Regressor は学習・予測を行い、係数と切片を公開する線形回帰モデル
type Regressor interface {
	Fitter
	Predictor
	// Coef は学習された重み（係数）のコピーを返す
	Coef() []float64
	// Intercept は切片を返す
	Intercept() float64
}
