package errors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCheckVector(t *testing.T) {
	assert.NoError(t, CheckVector("op", "y", []float64{1, 2, 3}))

	err := CheckVector("op", "y", []float64{1, math.NaN(), 3})
	require.Error(t, err)
	var numErr *NumericalError
	require.True(t, As(err, &numErr))
	assert.Equal(t, "y", numErr.Column)
	assert.Contains(t, numErr.Reason, "index 1")
}

func TestCheckMatrix(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, math.Inf(1),
	})

	err := CheckMatrix("Ridge.Fit", X, 2, 3, []string{"a", "b", "c"})
	require.Error(t, err)
	var numErr *NumericalError
	require.True(t, As(err, &numErr))
	assert.Equal(t, "c", numErr.Column)

	err = CheckMatrix("Ridge.Fit", X, 2, 3, nil)
	require.True(t, As(err, &numErr))
	assert.Equal(t, "#2", numErr.Column)

	assert.NoError(t, CheckMatrix("Ridge.Fit", X, 2, 2, nil))
}
