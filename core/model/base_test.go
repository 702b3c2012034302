package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	assert.False(t, e.IsFitted())
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(e.CheckFitted("Ridge", "Predict"), &nfErr))

	e.SetFeatureNames([]string{"a", "b"})
	e.SetFitted(2)
	assert.True(t, e.IsFitted())
	assert.NoError(t, e.CheckFitted("Ridge", "Predict"))
	assert.Equal(t, 2, e.NFeatures())
	assert.NoError(t, e.CheckFeatures("Ridge.Predict", 2))

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(e.CheckFeatures("Ridge.Predict", 3), &dimErr))
	assert.Equal(t, 2, dimErr.Expected)

	assert.Equal(t, "b", e.FeatureName(1))
	assert.Equal(t, "#5", e.FeatureName(5))

	e.Reset()
	assert.False(t, e.IsFitted())
	assert.Equal(t, []string{"a", "b"}, e.FeatureNames())
}
