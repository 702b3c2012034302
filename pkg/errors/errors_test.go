package errors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("repetitions", "must be at least 1", 0)

	want := "cancerreg: invalid configuration 'repetitions': must be at least 1 (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}

	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Fatal("Error should be castable to *ConfigError")
	}
	if cfgErr.Param != "repetitions" {
		t.Errorf("Param = %q, want repetitions", cfgErr.Param)
	}
}

func TestNewDataError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		column  string
		reason  string
		wantMsg string
	}{
		{
			name:    "with column",
			op:      "dataset.Load",
			column:  "TARGET_deathRate",
			reason:  "column not found",
			wantMsg: "cancerreg: dataset.Load: column 'TARGET_deathRate': column not found",
		},
		{
			name:    "without column",
			op:      "Splitter.Split",
			reason:  "training split is empty",
			wantMsg: "cancerreg: Splitter.Split: training split is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDataError(tt.op, tt.column, tt.reason)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}
			var dataErr *DataError
			if !As(err, &dataErr) {
				t.Error("Error should be castable to *DataError")
			}
		})
	}
}

func TestNewNumericalError(t *testing.T) {
	err := NewNumericalError("StandardScaler.Fit", "studyPerCap", "zero variance in training data", nil)

	want := "cancerreg: StandardScaler.Fit: column 'studyPerCap': zero variance in training data"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	wrapped := NewNumericalError("Ridge.Fit", "", "cholesky factorization failed", ErrSingularMatrix)
	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("NumericalError should unwrap to its cause")
	}

	// リピート番号付きでラップしても型が取り出せること
	outer := Wrapf(err, "repetition %d", 3)
	var numErr *NumericalError
	if !As(outer, &numErr) {
		t.Fatal("wrapped error should still be castable to *NumericalError")
	}
	if numErr.Column != "studyPerCap" {
		t.Errorf("Column = %q, want studyPerCap", numErr.Column)
	}
	if !strings.Contains(outer.Error(), "repetition 3") {
		t.Errorf("wrapped message should mention the repetition: %s", outer.Error())
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 9, 1)

	want := "cancerreg: Predict: dimension mismatch on axis 1 (features). Expected 10, got 9"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Ridge", "Predict")

	want := "cancerreg: Ridge: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewUndefinedMetricWarning("r2", "empty evaluation split", 0))
	Warn(NewIllConditionedWarning("Ridge.Fit", 1e17))

	if len(got) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "'r2' is ill-defined") {
		t.Errorf("unexpected warning text: %s", got[0])
	}

	var routed int
	SetZerologWarnFunc(func(w error) { routed++ })
	defer SetZerologWarnFunc(nil)
	Warn(NewUndefinedMetricWarning("rmse", "empty evaluation split", 0))
	if routed != 1 || len(got) != 2 {
		t.Errorf("zerolog warn func should take precedence: routed=%d handler=%d", routed, len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrSingularMatrix, "repetition 3")
	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("Is() should find the sentinel through Wrap")
	}
	if !strings.HasPrefix(wrapped.Error(), "repetition 3") {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

func TestWrapDataError_KeepsCause(t *testing.T) {
	_, openErr := os.Open(filepath.Join(t.TempDir(), "missing.csv"))
	err := Wrap(WrapDataError("dataset.Load", "", "cannot open input file", openErr), "missing.csv")

	if !Is(err, fs.ErrNotExist) {
		t.Errorf("fs.ErrNotExist should be reachable, got %v", err)
	}
	var dataErr *DataError
	if !As(err, &dataErr) {
		t.Fatalf("expected DataError, got %T", err)
	}
	if !strings.Contains(err.Error(), "cannot open input file") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
