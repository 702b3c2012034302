package errors

import (
	"fmt"
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckVector checks a named vector for NaN or Inf and returns a NumericalError
// naming the offending position.
func CheckVector(operation, name string, values []float64) error {
	for i, v := range values {
		if !IsFinite(v) {
			return NewNumericalError(operation, name,
				fmt.Sprintf("non-finite value %v at index %d", v, i), nil)
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for NaN or Inf. When names is
// non-nil the error carries the name of the first offending column.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int, names []string) error {
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := matrix.At(i, j)
			if IsFinite(v) {
				continue
			}
			column := fmt.Sprintf("#%d", j)
			if j < len(names) {
				column = names[j]
			}
			return NewNumericalError(operation, column,
				fmt.Sprintf("non-finite value %v at row %d", v, i), nil)
		}
	}
	return nil
}
