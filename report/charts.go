package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/pipeline"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// DefaultScatterColumns is the number of subplots per row in ScatterGrid.
const DefaultScatterColumns = 6

// ScatterGrid draws one feature-vs-target scatter per feature, cols per row.
// Unused cells in the last row are left blank. The output format follows
// the file extension (png, svg, pdf, ...).
func ScatterGrid(ds *dataset.Dataset, cols int, path string) error {
	if cols <= 0 {
		cols = DefaultScatterColumns
	}
	F := ds.NFeatures()
	if F == 0 {
		return errors.NewDataError("report.ScatterGrid", "", "no features to plot")
	}
	rows := (F + cols - 1) / cols

	target := ds.TargetValues()
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	for j, name := range ds.Features {
		x := ds.Column(j)
		xys := make(plotter.XYs, len(x))
		for i := range x {
			xys[i].X = x[i]
			xys[i].Y = target[i]
		}

		p := plot.New()
		p.X.Label.Text = name
		p.Y.Label.Text = ds.Target
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrapf(err, "report.ScatterGrid: feature %s", name)
		}
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Color = plotutil.Color(0)
		p.Add(s)
		plots[j/cols][j%cols] = p
	}
	for j := F; j < rows*cols; j++ {
		blank := plot.New()
		blank.HideAxes()
		plots[j/cols][j%cols] = blank
	}

	c, err := draw.NewFormattedCanvas(vg.Length(cols)*3*vg.Inch, vg.Length(rows)*2.5*vg.Inch, format(path))
	if err != nil {
		return errors.Wrapf(err, "report.ScatterGrid: %s", path)
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	// gonum/plot の描画は失敗を error ではなく panic で報告することがある
	err = errors.SafeExecute("report.ScatterGrid", func() error {
		canvases := plot.Align(plots, tiles, dc)
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				plots[r][col].Draw(canvases[r][col])
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeCanvas(c, path)
}

// CorrelationBars draws a grouped bar chart with one (correlation, weight)
// pair per feature. Non-finite values are drawn as zero-height bars.
func CorrelationBars(table pipeline.CorrelationTable, path string) error {
	if len(table) == 0 {
		return errors.NewDataError("report.CorrelationBars", "", "empty correlation table")
	}

	p := plot.New()
	p.Title.Text = "Correlation and Weight between Features and " + dataset.TargetColumn
	p.X.Label.Text = "Features"
	p.Y.Label.Text = "Correlation / Weight"

	width := vg.Points(6)
	corr, err := plotter.NewBarChart(finiteValues(table.Correlations()), width)
	if err != nil {
		return errors.Wrap(err, "report.CorrelationBars")
	}
	corr.Color = plotutil.Color(0)
	corr.LineStyle.Width = 0
	corr.Offset = -width / 2

	weight, err := plotter.NewBarChart(finiteValues(table.Weights()), width)
	if err != nil {
		return errors.Wrap(err, "report.CorrelationBars")
	}
	weight.Color = plotutil.Color(1)
	weight.LineStyle.Width = 0
	weight.Offset = width / 2

	p.Add(plotter.NewGrid(), corr, weight)
	p.Legend.Add("Correlation", corr)
	p.Legend.Add("Weight", weight)
	p.Legend.Top = true

	names := make([]string, len(table))
	for i, row := range table {
		names[i] = row.Feature
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	w := vg.Length(len(table)) * 0.4 * vg.Inch
	if w < 8*vg.Inch {
		w = 8 * vg.Inch
	}
	err = errors.SafeExecute("report.CorrelationBars", func() error {
		return p.Save(w, 6*vg.Inch, path)
	})
	if err != nil {
		return errors.Wrapf(err, "report.CorrelationBars: %s", path)
	}
	return nil
}

func finiteValues(v []float64) plotter.Values {
	out := make(plotter.Values, len(v))
	for i, x := range v {
		if errors.IsFinite(x) {
			out[i] = x
		}
	}
	return out
}

func format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func writeCanvas(c vg.CanvasWriterTo, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "report: close %s", path)
		}
	}()
	if _, err := c.WriteTo(f); err != nil {
		return errors.Wrapf(err, "report: write %s", path)
	}
	return nil
}
