// Package cancerreg estimates county cancer mortality from socio-economic
// features with repeated-split ridge regression.
//
// The data set (cancer_reg.csv) is cleaned, split into train/eval/test
// partitions many times, standardized on each training partition and fitted
// with a ridge model without intercept. The per-repetition weights are then
// averaged into a single final model, evaluated once on held-out rows and
// compared against the raw feature/target correlations.
//
// # Installation
//
//	go install github.com/YuminosukeSato/cancerreg/cmd/cancerreg@latest
//
// # Quick Start
//
// From the command line:
//
//	cancerreg run --data cancer_reg.csv --repetitions 10 --alpha 1.0 --plot-dir out
//
// From Go:
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/cancerreg/dataset"
//	    "github.com/YuminosukeSato/cancerreg/pipeline"
//	    "github.com/YuminosukeSato/cancerreg/report"
//	)
//
//	func main() {
//	    ds, _, err := dataset.Load("cancer_reg.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    runner, err := pipeline.NewRunner(pipeline.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    res, err := runner.Run(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    eval, err := res.Evaluate()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    report.WriteEvaluation(os.Stdout, eval, res.Model)
//	}
//
// # Packages
//
//   - dataset: CSV (optionally .xz) loading, de-duplication and missing-value removal
//   - modelselection: seeded train/eval/test splitting
//   - preprocessing: StandardScaler fitted on training rows only
//   - linear: Ridge regression without intercept
//   - metrics: RMSE, R², MAE and Pearson correlation
//   - pipeline: repetition loop, weight aggregation, final evaluation and correlation report
//   - report: console output and gonum/plot charts
//   - core/model: estimator interfaces and base types
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// # License
//
// cancerreg is released under the MIT License.
package cancerreg
