// Package modelselection provides seeded hold-out splitters.
package modelselection

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// Split holds disjoint row indices for one repetition.
type Split struct {
	Train []int
	Eval  []int
	Test  []int
}

// Sizes returns the lengths of the train, eval and test parts.
func (s Split) Sizes() (train, eval, test int) {
	return len(s.Train), len(s.Eval), len(s.Test)
}

// TrainTestSplit shuffles a copy of indices with rng and cuts it into a test
// part of ceil(testSize*n) rows and a train part holding the rest, the way
// scikit-learn's train_test_split does.
func TrainTestSplit(indices []int, testSize float64, rng *rand.Rand) (train, test []int, err error) {
	if err := checkFraction("test_size", testSize); err != nil {
		return nil, nil, err
	}
	n := len(indices)
	if n == 0 {
		return nil, nil, errors.NewDataError("TrainTestSplit", "", "no rows to split")
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTrain < 1 {
		return nil, nil, errors.NewDataError("TrainTestSplit", "",
			fmt.Sprintf("test_size=%g with %d rows leaves no training rows", testSize, n))
	}

	perm := make([]int, n)
	copy(perm, indices)
	rng.Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	return perm[nTest:], perm[:nTest], nil
}

// Splitter produces three-way train/eval/test splits. The test part is cut
// from all rows first, then the eval part from what remains.
type Splitter struct {
	TestSize float64
	EvalSize float64

	rng *rand.Rand
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSeed makes the splitter deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Splitter) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand lets the caller share a random source with other components.
func WithRand(r *rand.Rand) Option {
	return func(s *Splitter) {
		s.rng = r
	}
}

// NewSplitter creates a splitter. Both fractions must lie in (0, 1).
// Without WithSeed or WithRand the splitter draws a fresh random seed.
func NewSplitter(testSize, evalSize float64, opts ...Option) (*Splitter, error) {
	if err := checkFraction("test_size", testSize); err != nil {
		return nil, err
	}
	if err := checkFraction("eval_size", evalSize); err != nil {
		return nil, err
	}

	s := &Splitter{TestSize: testSize, EvalSize: evalSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s, nil
}

// Split partitions rows 0..n-1 into train, eval and test.
func (s *Splitter) Split(n int) (Split, error) {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	rest, test, err := TrainTestSplit(all, s.TestSize, s.rng)
	if err != nil {
		return Split{}, errors.Wrap(err, "test stage")
	}
	train, eval, err := s.SplitRemainder(rest)
	if err != nil {
		return Split{}, err
	}
	return Split{Train: train, Eval: eval, Test: test}, nil
}

// SplitRemainder performs only the second stage: it splits rows that are
// already separated from a test set into train and eval.
func (s *Splitter) SplitRemainder(rest []int) (train, eval []int, err error) {
	train, eval, err = TrainTestSplit(rest, s.EvalSize, s.rng)
	if err != nil {
		return nil, nil, errors.Wrap(err, "eval stage")
	}
	return train, eval, nil
}

func checkFraction(param string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v >= 1 {
		return errors.NewConfigError(param, "must be in the open interval (0, 1)", v)
	}
	return nil
}
