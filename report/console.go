// Package report renders pipeline results as console text and charts.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/YuminosukeSato/cancerreg/pipeline"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteRuns prints the per-repetition validation metrics.
func WriteRuns(w io.Writer, runs []pipeline.RunResult) error {
	p := &printer{w: w}
	for _, run := range runs {
		train, eval, test := run.Split.Sizes()
		p.printf("[ Repetition %d ] train=%d eval=%d test=%d\n", run.Repetition, train, eval, test)
		p.printf("RMSE: %.6f\n", run.Eval.RMSE)
		p.printf("R2 Score: %.6f\n", run.Eval.R2)
	}
	return errors.Wrap(p.err, "report.WriteRuns")
}

// WriteEvaluation prints the final test metrics together with the averaged
// coefficients and bias.
func WriteEvaluation(w io.Writer, eval pipeline.Evaluation, m *pipeline.FinalModel) error {
	p := &printer{w: w}
	p.printf("[ Final model on the last repetition's test split (n=%d) ]\n", eval.N)
	p.printf("RMSE: %.6f\n", eval.RMSE)
	p.printf("R2 Score: %.6f\n", eval.R2)
	p.printf("MAE: %.6f\n", eval.MAE)

	coef := m.Coef()
	parts := make([]string, len(coef))
	for i, c := range coef {
		parts[i] = fmt.Sprintf("%.6g", c)
	}
	p.printf("Averaged weights: [%s]\n", strings.Join(parts, " "))
	p.printf("Bias: %.6f\n", m.Bias())
	return errors.Wrap(p.err, "report.WriteEvaluation")
}

// WriteCorrelations prints one line per feature: correlation with the
// target, final weight and relationship label.
func WriteCorrelations(w io.Writer, table pipeline.CorrelationTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := &printer{w: tw}
	p.printf("#\tfeature\tcorrelation\tweight\trelationship\n")
	for i, row := range table {
		p.printf("%d\t%s\t%.6f\t%.6f\t%s\n", i+1, row.Feature, row.Correlation, row.Weight, row.Label)
	}
	if p.err != nil {
		return errors.Wrap(p.err, "report.WriteCorrelations")
	}
	return errors.Wrap(tw.Flush(), "report.WriteCorrelations")
}
