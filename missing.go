package datajanitor

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/reoring/datajanitor/internal/stats"
)

// Missing-value strategies.
const (
	MissingDrop   = "drop"
	MissingMean   = "mean"
	MissingMedian = "median"
	MissingMode   = "mode"
)

// MissingOptions configures HandleMissingValues.
type MissingOptions struct {
	// Method is one of the Missing* strategies; empty selects MissingMean.
	Method    string
	Allocator memory.Allocator
}

// HandleMissingValues removes or fills missing cells.
//
//   - drop removes every row holding a missing cell.
//   - mean and median fill numeric columns with the statistic of their present
//     values; filled columns become float64. Other columns are left alone.
//   - mode fills every column with its most frequent present value, ties going
//     to the smallest value. Column types are kept.
//
// Columns without any present value keep their missing cells.
func HandleMissingValues(data any, opts MissingOptions) (*Dataset, error) {
	mem := allocatorOr(opts.Allocator)
	ds, release, err := asDataset(data, mem)
	if err != nil {
		return nil, err
	}
	defer release()

	method := opts.Method
	if method == "" {
		method = MissingMean
	}
	switch method {
	case MissingDrop:
		return dropMissing(ds, mem)
	case MissingMean, MissingMedian, MissingMode:
	default:
		return nil, fmt.Errorf("%w: missing-value method %q", ErrUnsupportedMethod, opts.Method)
	}

	fields := append([]arrow.Field(nil), ds.Schema().Fields()...)
	cols := make([]arrow.Array, len(fields))
	defer releaseAll(cols)
	for i, col := range ds.rec.Columns() {
		var (
			filled arrow.Array
			err    error
		)
		if col.NullN() > 0 && col.NullN() < col.Len() {
			if method == MissingMode {
				filled, err = fillMode(mem, col)
			} else {
				filled = fillStatistic(mem, col, method)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("datajanitor: filling column %q: %w", fields[i].Name, err)
		}
		if filled == nil {
			col.Retain()
			filled = col
		}
		fields[i].Type = filled.DataType()
		cols[i] = filled
	}
	return ds.withColumns(fields, cols), nil
}

func dropMissing(ds *Dataset, mem memory.Allocator) (*Dataset, error) {
	keep := make([]bool, ds.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for _, col := range ds.rec.Columns() {
		if col.NullN() == 0 {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				keep[i] = false
			}
		}
	}
	return ds.takeRows(mem, keep)
}

// fillStatistic returns a float64 copy of a numeric column with nulls
// replaced by its mean or median of the non-NaN values, or nil for
// non-numeric columns and columns with nothing to average.
func fillStatistic(mem memory.Allocator, col arrow.Array, method string) arrow.Array {
	vals, ok := presentFloats(col)
	if !ok || len(vals) == 0 {
		return nil
	}
	fill := stats.Mean(vals)
	if method == MissingMedian {
		fill = stats.Median(vals)
	}
	get, _ := floatReader(col)
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Reserve(col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			b.Append(fill)
		} else {
			b.Append(get(i))
		}
	}
	return b.NewArray()
}

// fillMode replaces nulls with the column's mode by splicing slices of the
// original array, so any physical type is preserved.
func fillMode(mem memory.Allocator, col arrow.Array) (arrow.Array, error) {
	var rows []int
	var keys []string
	first := map[string]int{}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		k := col.ValueStr(i)
		if _, ok := first[k]; !ok {
			first[k] = i
		}
		rows = append(rows, i)
		keys = append(keys, k)
	}
	less := func(a, b string) bool { return lessCells(col, first[a], first[b]) }
	modeRow := rows[stats.ModeIndex(keys, less)]

	var parts []arrow.Array
	defer func() { releaseAll(parts) }()
	start := -1
	for i := 0; i <= col.Len(); i++ {
		valid := i < col.Len() && col.IsValid(i)
		if valid {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			parts = append(parts, array.NewSlice(col, int64(start), int64(i)))
			start = -1
		}
		if i < col.Len() {
			parts = append(parts, array.NewSlice(col, int64(modeRow), int64(modeRow+1)))
		}
	}
	return array.Concatenate(parts, mem)
}

// lessCells orders two present cells of the same column by value.
func lessCells(col arrow.Array, a, b int) bool {
	if get, ok := floatReader(col); ok {
		return get(a) < get(b)
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(a) < c.Value(b)
	case *array.LargeString:
		return c.Value(a) < c.Value(b)
	case *array.Boolean:
		return !c.Value(a) && c.Value(b)
	}
	return col.ValueStr(a) < col.ValueStr(b)
}
