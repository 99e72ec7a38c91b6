package datajanitor

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/reoring/datajanitor/internal/stats"
)

// ScaleOptions configures StandardScale.
type ScaleOptions struct {
	// Columns selects the columns to scale. Nil means every numeric column.
	Columns   []string
	Allocator memory.Allocator
}

// StandardScale rescales the selected columns to zero mean and unit variance
// using (x - mean) / std with the population standard deviation. Scaled
// columns become float64; a constant column scales to 0. Missing cells stay
// missing and NaN stays NaN; neither enters the mean or std.
func StandardScale(data any, opts ScaleOptions) (*Dataset, error) {
	mem := allocatorOr(opts.Allocator)
	ds, release, err := asDataset(data, mem)
	if err != nil {
		return nil, err
	}
	defer release()

	idx, err := numericColumns(ds, opts.Columns)
	if err != nil {
		return nil, err
	}
	selected := make(map[int]bool, len(idx))
	for _, i := range idx {
		selected[i] = true
	}

	fields := append([]arrow.Field(nil), ds.Schema().Fields()...)
	cols := make([]arrow.Array, len(fields))
	defer releaseAll(cols)
	for i, col := range ds.rec.Columns() {
		if !selected[i] {
			col.Retain()
			cols[i] = col
			continue
		}
		cols[i] = zscores(mem, col)
		fields[i].Type = arrow.PrimitiveTypes.Float64
	}
	return ds.withColumns(fields, cols), nil
}

func zscores(mem memory.Allocator, col arrow.Array) arrow.Array {
	vals, _ := presentFloats(col)
	get, _ := floatReader(col)
	mean, std := stats.Mean(vals), stats.Std(vals)
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Reserve(col.Len())
	for i := 0; i < col.Len(); i++ {
		switch {
		case col.IsNull(i):
			b.AppendNull()
		case std == 0:
			b.Append(0)
		default:
			b.Append((get(i) - mean) / std)
		}
	}
	return b.NewArray()
}
