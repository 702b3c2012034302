package dataset

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cancerreg/pkg/errors"
	"github.com/YuminosukeSato/cancerreg/pkg/log"
)

// Stats describes what Load removed while cleaning.
type Stats struct {
	RawRows    int
	Duplicates int
	Incomplete int
	Rows       int
}

type loadConfig struct {
	features []string
	target   string
	logger   log.Logger
}

// Option configures Load and Read.
type Option func(*loadConfig)

// WithFeatures selects the feature columns, in weight order.
func WithFeatures(features []string) Option {
	return func(c *loadConfig) {
		c.features = append([]string(nil), features...)
	}
}

// WithTarget overrides the target column name.
func WithTarget(target string) Option {
	return func(c *loadConfig) {
		c.target = target
	}
}

// WithLogger sets the logger used to report cleaning statistics.
func WithLogger(logger log.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

func newLoadConfig(opts []Option) *loadConfig {
	cfg := &loadConfig{
		features: append([]string(nil), DefaultFeatures...),
		target:   TargetColumn,
		logger:   log.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a CSV file. Paths ending in ".xz" are decompressed on the fly.
func Load(path string, opts ...Option) (*Dataset, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.Wrap(
			errors.WrapDataError("dataset.Load", "", "cannot open input file", err), path)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".xz") {
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, Stats{}, errors.Wrap(
				errors.WrapDataError("dataset.Load", "", "invalid xz stream", err), path)
		}
		r = zr
	}

	cfg := newLoadConfig(opts)
	cfg.logger = cfg.logger.With(log.SourceKey, path)
	return read(r, cfg)
}

// Read parses CSV data from r. See Load.
func Read(r io.Reader, opts ...Option) (*Dataset, Stats, error) {
	return read(r, newLoadConfig(opts))
}

func read(r io.Reader, cfg *loadConfig) (*Dataset, Stats, error) {
	// Excel などが付ける UTF-8 BOM はヘッダー名に混ざらないよう取り除く
	r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	// 全列を文字列として読み込み、数値変換は必要な列だけ行う
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, Stats{}, errors.WrapDataError("dataset.Read", "", "malformed CSV", df.Err)
	}

	required := append(append([]string(nil), cfg.features...), cfg.target)
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, name := range required {
		if !present[name] {
			return nil, Stats{}, errors.NewDataError("dataset.Read", name, "required column is missing")
		}
	}

	stats := Stats{RawRows: df.Nrow()}

	// 全列一致の重複行を除去する（最初の出現を残す）
	unique := dedupRows(df.Records())
	stats.Duplicates = stats.RawRows - len(unique)
	if stats.Duplicates > 0 {
		df = df.Subset(unique)
		if df.Err != nil {
			return nil, Stats{}, errors.Wrap(df.Err, "dataset.Read: subset")
		}
	}

	columns := make([][]float64, len(required))
	for j, name := range required {
		columns[j] = parseFloats(df.Col(name).Records())
	}

	n := df.Nrow()
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		complete := true
		for j := range columns {
			if !errors.IsFinite(columns[j][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	stats.Incomplete = n - len(keep)
	stats.Rows = len(keep)

	if stats.Rows == 0 {
		return nil, stats, errors.NewDataError("dataset.Read", "", "no complete rows left after cleaning")
	}

	F := len(cfg.features)
	X := mat.NewDense(len(keep), F, nil)
	y := mat.NewVecDense(len(keep), nil)
	for i, row := range keep {
		for j := 0; j < F; j++ {
			X.Set(i, j, columns[j][row])
		}
		y.SetVec(i, columns[F][row])
	}

	cfg.logger.Info("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, stats.Rows,
		log.FeaturesKey, F,
		log.DroppedKey, stats.Duplicates+stats.Incomplete,
	)
	if stats.Incomplete > 0 {
		cfg.logger.Warn("rows with missing or non-numeric values excluded",
			log.DroppedKey, stats.Incomplete,
		)
	}

	return &Dataset{Features: cfg.features, Target: cfg.target, x: X, y: y}, stats, nil
}

// parseFloats converts raw fields, ignoring surrounding whitespace.
// Fields that do not parse become NaN.
func parseFloats(fields []string) []float64 {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// dedupRows returns the data-row indices (header excluded) of the first
// occurrence of each distinct record.
func dedupRows(records [][]string) []int {
	if len(records) <= 1 {
		return nil
	}
	seen := make(map[string]struct{}, len(records)-1)
	keep := make([]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		key := strings.Join(rec, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	return keep
}

// WriteCSV writes the dataset with a header of feature names plus target.
// Values use the shortest representation that round-trips.
func WriteCSV(w io.Writer, d *Dataset) error {
	records := make([][]string, 0, d.Len()+1)
	header := append(append([]string(nil), d.Features...), d.Target)
	records = append(records, header)

	for i := 0; i < d.Len(); i++ {
		rec := make([]string, 0, len(header))
		for j := range d.Features {
			rec = append(rec, strconv.FormatFloat(d.x.At(i, j), 'g', -1, 64))
		}
		rec = append(rec, strconv.FormatFloat(d.y.AtVec(i), 'g', -1, 64))
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return errors.Wrap(df.Err, "dataset.WriteCSV")
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.Wrapf(err, "dataset.WriteCSV: %d rows", d.Len())
	}
	return nil
}
