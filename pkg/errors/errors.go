// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 設定・データ・数値計算の三分類のエラー型と、学習済み状態や次元に関する
// 汎用エラー型を構造化された形で提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("cancerreg-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、検証データが空、または目的変数の分散が0の場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// IllConditionedWarning は連立方程式の条件数が大きく、解の精度が低い可能性がある場合の警告です。
type IllConditionedWarning struct {
	Op        string
	Condition float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: system is ill-conditioned (condition number %.3g); results may be inaccurate", w.Op, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Float64("condition", w.Condition).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning は新しいIllConditionedWarningを作成します。
func NewIllConditionedWarning(op string, condition float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Condition: condition}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ConfigError は実行設定（反復回数、分割比率、正則化強度など）が不正な場合のエラーです。
type ConfigError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cancerreg: invalid configuration '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError は新しいConfigErrorを作成し、スタックトレースを付与します。
func NewConfigError(param, reason string, value interface{}) error {
	return errors.WithStack(&ConfigError{Param: param, Reason: reason, Value: value})
}

// DataError は入力データに問題がある場合のエラーです。
// 列の欠落、読み込み失敗、空の分割などを表します。
type DataError struct {
	Op     string
	Column string // 問題のある列名（オプション）
	Reason string
	Err    error // 原因となったエラー（オプション）
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("cancerreg: %s: %s", e.Op, e.Reason)
	if e.Column != "" {
		msg = fmt.Sprintf("cancerreg: %s: column '%s': %s", e.Op, e.Column, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "DataError")
}

// NewDataError は新しいDataErrorを作成し、スタックトレースを付与します。
func NewDataError(op, column, reason string) error {
	return errors.WithStack(&DataError{Op: op, Column: column, Reason: reason})
}

// WrapDataError は原因 cause を保持した DataError を作成します。
// errors.Is(err, fs.ErrNotExist) のように原因を判定できます。
func WrapDataError(op, column, reason string, cause error) error {
	return errors.WithStack(&DataError{Op: op, Column: column, Reason: reason, Err: cause})
}

// NumericalError は数値計算が破綻した場合のエラーです。
// 分散0の列による除算、NaN/Infの混入、特異な連立方程式などを表します。
type NumericalError struct {
	Op     string
	Column string // 問題のある列名（オプション）
	Reason string
	Err    error
}

func (e *NumericalError) Error() string {
	msg := fmt.Sprintf("cancerreg: %s: %s", e.Op, e.Reason)
	if e.Column != "" {
		msg = fmt.Sprintf("cancerreg: %s: column '%s': %s", e.Op, e.Column, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *NumericalError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "NumericalError")
}

// NewNumericalError は新しいNumericalErrorを作成し、スタックトレースを付与します。
func NewNumericalError(op, column, reason string, cause error) error {
	return errors.WithStack(&NumericalError{Op: op, Column: column, Reason: reason, Err: cause})
}

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("cancerreg: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("cancerreg: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("cancerreg: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
