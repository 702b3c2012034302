package pipeline

import (
	"github.com/YuminosukeSato/cancerreg/core/parallel"
	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/metrics"
	"github.com/YuminosukeSato/cancerreg/pkg/errors"
)

// 相関ラベル
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

// rows×features がこれを超えると列ごとの計算を並列化する
const correlationParallelThreshold = 100_000

// CorrelationRow は特徴量一つ分の相関と重み
type CorrelationRow struct {
	Feature     string
	Correlation float64
	Weight      float64
	Label       string
}

// CorrelationTable は特徴量の順に並んだ CorrelationRow
type CorrelationTable []CorrelationRow

// Correlations は相関係数だけを取り出す
func (t CorrelationTable) Correlations() []float64 {
	out := make([]float64, len(t))
	for i, row := range t {
		out[i] = row.Correlation
	}
	return out
}

// Weights は重みだけを取り出す
func (t CorrelationTable) Weights() []float64 {
	out := make([]float64, len(t))
	for i, row := range t {
		out[i] = row.Weight
	}
	return out
}

// Label は basis に従ってラベルを決める
// 相関が NaN の場合、LabelByCorrelation では positive になる
func (b LabelBasis) Label(weight, correlation float64) string {
	v := weight
	if b == LabelByCorrelation {
		v = correlation
	}
	if v < 0 {
		return LabelNegative
	}
	return LabelPositive
}

// Correlate は全データ（分割前）で各特徴量と目的変数のピアソン相関を計算し、
// 最終モデルの重みと組にする
func Correlate(ds *dataset.Dataset, m *FinalModel, basis LabelBasis) (CorrelationTable, error) {
	F := ds.NFeatures()
	coef := m.Coef()
	if len(coef) != F {
		return nil, errors.NewDimensionError("pipeline.Correlate", F, len(coef), 1)
	}
	switch basis {
	case LabelByWeight, LabelByCorrelation:
	default:
		return nil, errors.NewConfigError("label_basis", "must be one of weight, correlation", basis)
	}

	target := ds.TargetValues()
	corr := make([]float64, F)
	errs := make([]error, F)
	parallel.ParallelizeWithThreshold(F, ds.Len()*F, correlationParallelThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			corr[j], errs[j] = metrics.Pearson(ds.Column(j), target)
		}
	})

	table := make(CorrelationTable, F)
	for j := 0; j < F; j++ {
		if errs[j] != nil {
			return nil, errors.Wrapf(errs[j], "feature %s", ds.Features[j])
		}
		table[j] = CorrelationRow{
			Feature:     ds.Features[j],
			Correlation: corr[j],
			Weight:      coef[j],
			Label:       basis.Label(coef[j], corr[j]),
		}
	}
	return table, nil
}
