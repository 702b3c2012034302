package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

func TestRidge_ClosedForm(t *testing.T) {
	// XᵀX + I = [[3,1],[1,3]], Xᵀy = [4,5] → w = [7/8, 11/8]
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	r, err := NewRidge(1.0)
	require.NoError(t, err)
	require.NoError(t, r.Fit(X, y))

	assert.InDeltaSlice(t, []float64{7.0 / 8, 11.0 / 8}, r.Coef(), 1e-12)
	assert.Equal(t, 0.0, r.Intercept())

	pred, err := r.Predict(X)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/8, pred.AtVec(0), 1e-12)
	assert.InDelta(t, 18.0/8, pred.AtVec(2), 1e-12)
}

func TestRidge_AlphaZeroMatchesLeastSquares(t *testing.T) {
	X, y := createBenchmarkData(200, 5)

	r, err := NewRidge(0)
	require.NoError(t, err)
	require.NoError(t, r.Fit(X, y))

	// QR による最小二乗解
	var ols mat.VecDense
	require.NoError(t, ols.SolveVec(X, y))

	assert.InDeltaSlice(t, ols.RawVector().Data, r.Coef(), 1e-8)
}

func TestRidge_ShrinksWithAlpha(t *testing.T) {
	X, y := createBenchmarkData(100, 4)

	prev := math.Inf(1)
	for _, alpha := range []float64{0, 0.1, 1, 10, 100, 1000} {
		r, err := NewRidge(alpha)
		require.NoError(t, err)
		require.NoError(t, r.Fit(X, y))

		norm := floats.Norm(r.Coef(), 2)
		assert.Less(t, norm, prev, "alpha=%g", alpha)
		prev = norm
	}
}

func TestRidge_RecoversSigns(t *testing.T) {
	X, y := createBenchmarkData(500, 3)
	r, err := NewRidge(1.0)
	require.NoError(t, err)
	require.NoError(t, r.Fit(X, y))

	// 真の重みは 0.5, 1.0, 1.5
	assert.InDeltaSlice(t, []float64{0.5, 1.0, 1.5}, r.Coef(), 0.05)
}

func TestNewRidge_InvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := NewRidge(alpha)
		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr), "alpha=%v", alpha)
		assert.Equal(t, "alpha", cfgErr.Param)
	}
}

func TestRidge_FitErrors(t *testing.T) {
	t.Run("singular without regularization", func(t *testing.T) {
		// 2列目が1列目と同一
		X := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})
		y := mat.NewVecDense(3, []float64{1, 2, 3})
		r, err := NewRidge(0)
		require.NoError(t, err)

		err = r.Fit(X, y)
		var numErr *errors.NumericalError
		require.True(t, errors.As(err, &numErr))
		assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
		assert.False(t, r.IsFitted())
	})

	t.Run("same data regularized", func(t *testing.T) {
		X := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})
		y := mat.NewVecDense(3, []float64{1, 2, 3})
		r, err := NewRidge(0.5)
		require.NoError(t, err)
		require.NoError(t, r.Fit(X, y))
		coef := r.Coef()
		assert.InDelta(t, coef[0], coef[1], 1e-12)
	})

	t.Run("non-finite target", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{1, 2})
		y := mat.NewVecDense(2, []float64{1, math.Inf(1)})
		r, err := NewRidge(1, WithTargetName("TARGET_deathRate"))
		require.NoError(t, err)

		err = r.Fit(X, y)
		var numErr *errors.NumericalError
		require.True(t, errors.As(err, &numErr))
		assert.Equal(t, "TARGET_deathRate", numErr.Column)
	})

	t.Run("non-finite feature", func(t *testing.T) {
		X := mat.NewDense(2, 2, []float64{1, 2, math.NaN(), 4})
		y := mat.NewVecDense(2, []float64{1, 2})
		r, err := NewRidge(1, WithFeatureNames([]string{"povertyPercent", "MedianAge"}))
		require.NoError(t, err)

		err = r.Fit(X, y)
		var numErr *errors.NumericalError
		require.True(t, errors.As(err, &numErr))
		assert.Equal(t, "povertyPercent", numErr.Column)
	})

	t.Run("row mismatch", func(t *testing.T) {
		r, err := NewRidge(1)
		require.NoError(t, err)
		err = r.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewVecDense(2, []float64{1, 2}))
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 0, dimErr.Axis)
	})
}

func TestRidge_PredictErrors(t *testing.T) {
	r, err := NewRidge(1)
	require.NoError(t, err)

	_, err = r.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))

	require.NoError(t, r.Fit(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), mat.NewVecDense(2, []float64{1, 1})))
	_, err = r.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
