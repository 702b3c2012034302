package dataset

import (
	"bytes"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
)

const sampleCSV = `geo,a,b,TARGET_deathRate
x,1,10,100
y,2,20,200
x,1,10,100
z,3,,300
w,NA,40,400
v,5,50,500
`

func TestRead_CleansDuplicatesAndMissing(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	ds, stats, err := Read(strings.NewReader(sampleCSV),
		WithFeatures([]string{"a", "b"}),
		WithLogger(logger),
	)
	require.NoError(t, err)

	assert.Equal(t, Stats{RawRows: 6, Duplicates: 1, Incomplete: 2, Rows: 3}, stats)
	assert.Equal(t, []string{"a", "b"}, ds.Features)
	assert.Equal(t, TargetColumn, ds.Target)
	assert.Equal(t, []float64{1, 2, 5}, ds.Column(0))
	assert.Equal(t, []float64{10, 20, 50}, ds.Column(1))
	assert.Equal(t, []float64{100, 200, 500}, ds.TargetValues())

	assert.True(t, logger.ContainsMessage("dataset loaded"))
	assert.True(t, logger.ContainsMessage("rows with missing or non-numeric values excluded"))
}

func TestRead_DuplicatesNeedFullRowEquality(t *testing.T) {
	// 特徴量と目的変数が同じでも、他の列が違えば重複ではない
	csv := "geo,a,TARGET_deathRate\nx,1,10\ny,1,10\n"
	ds, stats, err := Read(strings.NewReader(csv), WithFeatures([]string{"a"}))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Duplicates)
	assert.Equal(t, 2, ds.Len())
}

func TestRead_MissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader(sampleCSV), WithFeatures([]string{"a", "medIncome"}))
	var dataErr *errors.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "medIncome", dataErr.Column)
}

func TestRead_NoCompleteRows(t *testing.T) {
	csv := "a,TARGET_deathRate\n,1\nfoo,2\n"
	_, stats, err := Read(strings.NewReader(csv), WithFeatures([]string{"a"}))
	var dataErr *errors.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, 2, stats.Incomplete)
}

func TestLoad_PlainAndXZ(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "cancer_reg.csv")
	require.NoError(t, os.WriteFile(plain, []byte(sampleCSV), 0o600))

	compressed := filepath.Join(dir, "cancer_reg.csv.xz")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	zw, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a, statsA, err := Load(plain, WithFeatures([]string{"a", "b"}))
	require.NoError(t, err)
	b, statsB, err := Load(compressed, WithFeatures([]string{"a", "b"}))
	require.NoError(t, err)

	assert.Equal(t, statsA, statsB)
	assert.True(t, mat.Equal(a.X(), b.X()))
	assert.True(t, mat.Equal(a.Y(), b.Y()))
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var dataErr *errors.DataError
	assert.True(t, errors.As(err, &dataErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "OS error should stay in the chain: %v", err)
}

func TestRead_UTF8BOM(t *testing.T) {
	// Excel の「CSV UTF-8」保存はファイル先頭に BOM を付ける
	csv := "\ufeffa,b,TARGET_deathRate\n1,2,3\n2,3,4\n"
	ds, stats, err := Read(strings.NewReader(csv), WithFeatures([]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, []float64{1, 2}, ds.Column(0))
	assert.Equal(t, []float64{3, 4}, ds.TargetValues())
}

func TestRead_TrimsNumericFields(t *testing.T) {
	csv := "a,b,TARGET_deathRate,geo\n 9,1,2,s\n3 , 4,\t5,t\n"
	ds, stats, err := Read(strings.NewReader(csv), WithFeatures([]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Incomplete)
	assert.Equal(t, []float64{9, 3}, ds.Column(0))
	assert.Equal(t, []float64{1, 4}, ds.Column(1))
	assert.Equal(t, []float64{2, 5}, ds.TargetValues())
}

func TestRead_DefaultFeaturesAreCopied(t *testing.T) {
	header := append(append([]string(nil), DefaultFeatures...), TargetColumn)
	row := make([]string, len(header))
	for i := range row {
		row[i] = strconv.Itoa(i + 1)
	}
	csv := strings.Join(header, ",") + "\n" + strings.Join(row, ",") + "\n"

	ds, _, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, DefaultFeatures, ds.Features)

	ds.Features[0] = "renamed"
	assert.Equal(t, "avgAnnCount", DefaultFeatures[0])
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{0.1, -2.5e-7, 3, 4.125, 1e10, -0})
	y := mat.NewVecDense(3, []float64{150.3, 201.1, 99.99})
	ds, err := New([]string{"incidenceRate", "BirthRate"}, TargetColumn, X, y)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))

	back, stats, err := Read(&buf, WithFeatures(ds.Features))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.True(t, mat.Equal(X, back.X()))
	assert.True(t, mat.Equal(y, back.Y()))
}

func TestDataset_ShuffleKeepsRowsAligned(t *testing.T) {
	n := 20
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(-i))
		y.SetVec(i, float64(10*i))
	}
	ds, err := New([]string{"a", "b"}, TargetColumn, X, y)
	require.NoError(t, err)

	shuffled := ds.Shuffle(rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, n, shuffled.Len())

	moved := false
	for i := 0; i < n; i++ {
		a := shuffled.X().At(i, 0)
		assert.Equal(t, -a, shuffled.X().At(i, 1))
		assert.Equal(t, 10*a, shuffled.Y().AtVec(i))
		if a != float64(i) {
			moved = true
		}
	}
	assert.True(t, moved)
	// 元のデータは変更されない
	assert.Equal(t, 0.0, ds.X().At(0, 0))

	again := ds.Shuffle(rand.New(rand.NewPCG(1, 2)))
	assert.True(t, mat.Equal(shuffled.X(), again.X()))
}

func TestDataset_Subset(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{10, 20, 30})
	ds, err := New([]string{"a"}, TargetColumn, X, y)
	require.NoError(t, err)

	sx, sy := ds.Subset([]int{2, 0})
	assert.Equal(t, []float64{3, 1}, mat.Col(nil, 0, sx))
	assert.Equal(t, []float64{30, 10}, sy.RawVector().Data)
}

func TestNew_DimensionErrors(t *testing.T) {
	X := mat.NewDense(2, 2, nil)
	_, err := New([]string{"a"}, TargetColumn, X, mat.NewVecDense(2, nil))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)

	_, err = New([]string{"a", "b"}, TargetColumn, X, mat.NewVecDense(3, nil))
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 0, dimErr.Axis)
}

func TestDefaultFeatures(t *testing.T) {
	assert.Len(t, DefaultFeatures, 28)
	seen := map[string]bool{}
	for _, f := range DefaultFeatures {
		assert.False(t, seen[f], f)
		seen[f] = true
	}
}
