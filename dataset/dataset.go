// Package dataset loads the cancer-mortality table and exposes it as a fixed
// feature matrix plus target vector.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// TargetColumn is the regression target of the cancer_reg table.
const TargetColumn = "TARGET_deathRate"

// DefaultFeatures is the feature set of the original analysis, in weight order.
var DefaultFeatures = []string{
	"avgAnnCount", "avgDeathsPerYear", "incidenceRate", "medIncome",
	"popEst2015", "povertyPercent", "studyPerCap", "MedianAge",
	"MedianAgeMale", "MedianAgeFemale", "AvgHouseholdSize",
	"PercentMarried", "PctNoHS18_24", "PctHS18_24", "PctBachDeg18_24",
	"PctHS25_Over", "PctBachDeg25_Over", "PctUnemployed16_Over",
	"PctPrivateCoverage", "PctEmpPrivCoverage", "PctPublicCoverage",
	"PctPublicCoverageAlone", "PctWhite", "PctBlack", "PctAsian",
	"PctOtherRace", "PctMarriedHouseholds", "BirthRate",
}

// Dataset is an N×F feature matrix with a row-aligned target.
// Column j of X always holds Features[j].
type Dataset struct {
	Features []string
	Target   string

	x *mat.Dense
	y *mat.VecDense
}

// New wraps an existing matrix and target. X and y are not copied.
func New(features []string, target string, X *mat.Dense, y *mat.VecDense) (*Dataset, error) {
	r, c := X.Dims()
	if c != len(features) {
		return nil, errors.NewDimensionError("dataset.New", len(features), c, 1)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError("dataset.New", r, y.Len(), 0)
	}
	if r == 0 {
		return nil, errors.NewDataError("dataset.New", "", "no rows")
	}
	return &Dataset{
		Features: append([]string(nil), features...),
		Target:   target,
		x:        X,
		y:        y,
	}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.y.Len()
}

// NFeatures returns F.
func (d *Dataset) NFeatures() int {
	return len(d.Features)
}

// X returns the feature matrix. Callers must not modify it.
func (d *Dataset) X() *mat.Dense {
	return d.x
}

// Y returns the target vector. Callers must not modify it.
func (d *Dataset) Y() *mat.VecDense {
	return d.y
}

// Column returns a copy of feature column j.
func (d *Dataset) Column(j int) []float64 {
	return mat.Col(nil, j, d.x)
}

// TargetValues returns a copy of the target.
func (d *Dataset) TargetValues() []float64 {
	out := make([]float64, d.y.Len())
	copy(out, d.y.RawVector().Data)
	return out
}

// Shuffle returns a new Dataset with rows permuted by rng.
func (d *Dataset) Shuffle(rng *rand.Rand) *Dataset {
	perm := rng.Perm(d.Len())
	X, y := d.Subset(perm)
	return &Dataset{Features: d.Features, Target: d.Target, x: X, y: y}
}

// Subset copies the given rows, in order, into a new matrix and vector.
func (d *Dataset) Subset(rows []int) (*mat.Dense, *mat.VecDense) {
	c := d.NFeatures()
	if len(rows) == 0 {
		return &mat.Dense{}, &mat.VecDense{}
	}
	X := mat.NewDense(len(rows), c, nil)
	y := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		X.SetRow(i, d.x.RawRowView(row))
		y.SetVec(i, d.y.AtVec(row))
	}
	return X, y
}
