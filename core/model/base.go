package model

import (
	"fmt"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全ての推定器の基底となる構造体
// 学習状態と、学習時に見た特徴量の数・名前を保持する
type BaseEstimator struct {
	state        EstimatorState
	nFeatures    int
	featureNames []string
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定し、特徴量の数を記録する
func (e *BaseEstimator) SetFitted(nFeatures int) {
	e.state = Fitted
	e.nFeatures = nFeatures
}

// Reset はモデルを初期状態にリセットする（特徴量名は保持する）
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nFeatures = 0
}

// NFeatures は学習時の特徴量の数を返す
func (e *BaseEstimator) NFeatures() int {
	return e.nFeatures
}

// SetFeatureNames はエラーメッセージに使う列名を設定する
func (e *BaseEstimator) SetFeatureNames(names []string) {
	e.featureNames = append([]string(nil), names...)
}

// FeatureName は j 列目の名前を返す。名前が未設定なら "#j" を返す
func (e *BaseEstimator) FeatureName(j int) string {
	if j >= 0 && j < len(e.featureNames) {
		return e.featureNames[j]
	}
	return fmt.Sprintf("#%d", j)
}

// FeatureNames は設定された列名を返す
func (e *BaseEstimator) FeatureNames() []string {
	return e.featureNames
}

// CheckFitted は学習済みでなければ NotFittedError を返す
func (e *BaseEstimator) CheckFitted(modelName, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// CheckFeatures は入力の列数が学習時と一致するかを検証する
func (e *BaseEstimator) CheckFeatures(op string, got int) error {
	if got != e.nFeatures {
		return errors.NewDimensionError(op, e.nFeatures, got, 1)
	}
	return nil
}
