package datajanitor

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/reoring/datajanitor/internal/kinds"
	"github.com/reoring/datajanitor/internal/stats"
)

// Outlier detection methods.
const (
	OutlierIQR    = "iqr"
	OutlierZScore = "zscore"
)

// DefaultOutlierMultiplier is used when OutlierOptions.Multiplier is zero.
const DefaultOutlierMultiplier = 1.5

// OutlierOptions configures DetectOutliers.
type OutlierOptions struct {
	// Multiplier scales the IQR fence or the z-score threshold. Zero selects
	// DefaultOutlierMultiplier.
	Multiplier float64
	// Method is OutlierIQR (default) or OutlierZScore.
	Method string
	// Columns restricts detection to the named columns. Nil means every
	// numeric column.
	Columns   []string
	Allocator memory.Allocator
}

// DetectOutliers removes every row holding an outlier in any checked column.
// Missing and NaN cells are never flagged and do not affect the statistics.
func DetectOutliers(data any, opts OutlierOptions) (*Dataset, error) {
	mem := allocatorOr(opts.Allocator)
	ds, release, err := asDataset(data, mem)
	if err != nil {
		return nil, err
	}
	defer release()

	k := opts.Multiplier
	switch {
	case k == 0:
		k = DefaultOutlierMultiplier
	case k < 0 || math.IsNaN(k) || math.IsInf(k, 0):
		return nil, fmt.Errorf("%w: %v", ErrInvalidMultiplier, opts.Multiplier)
	}
	method := opts.Method
	if method == "" {
		method = OutlierIQR
	}
	if method != OutlierIQR && method != OutlierZScore {
		return nil, fmt.Errorf("%w: outlier method %q", ErrUnsupportedMethod, opts.Method)
	}
	cols, err := numericColumns(ds, opts.Columns)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, ds.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for _, ci := range cols {
		col := ds.rec.Column(ci)
		get, _ := floatReader(col)
		vals, _ := presentFloats(col)
		if len(vals) == 0 {
			continue
		}
		flag := outlierTest(method, k, vals)
		for i := 0; i < col.Len(); i++ {
			if col.IsValid(i) && flag(get(i)) {
				keep[i] = false
			}
		}
	}
	return ds.takeRows(mem, keep)
}

// outlierTest builds the predicate flagging a value as an outlier.
func outlierTest(method string, k float64, vals []float64) func(float64) bool {
	if method == OutlierZScore {
		mean, std := stats.Mean(vals), stats.Std(vals)
		if std == 0 {
			return func(float64) bool { return false }
		}
		return func(v float64) bool { return math.Abs(v-mean)/std > k }
	}
	q1, q3 := stats.Quartiles(vals)
	iqr := q3 - q1
	lo, hi := q1-k*iqr, q3+k*iqr
	return func(v float64) bool { return v < lo || v > hi }
}

// numericColumns resolves a column selection to indices. With no selection
// every numeric column is returned; named columns must exist and be numeric.
func numericColumns(ds *Dataset, names []string) ([]int, error) {
	if names == nil {
		var out []int
		for i, f := range ds.Schema().Fields() {
			if kinds.Numeric(f.Type) {
				out = append(out, i)
			}
		}
		return out, nil
	}
	out := make([]int, 0, len(names))
	seen := map[int]bool{}
	for _, name := range names {
		ci := ds.columnIndex(name)
		if ci < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		if !kinds.Numeric(ds.Schema().Field(ci).Type) {
			return nil, fmt.Errorf("%w: %q is %s", ErrNonNumericColumn, name, kinds.Describe(ds.Schema().Field(ci).Type))
		}
		if !seen[ci] {
			seen[ci] = true
			out = append(out, ci)
		}
	}
	return out, nil
}
