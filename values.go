package datajanitor

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// floatReader returns an accessor reading cell i of a numeric column as
// float64. ok is false for non-numeric columns.
func floatReader(col arrow.Array) (get func(i int) float64, ok bool) {
	switch a := col.(type) {
	case *array.Int8:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int16:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int64:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint8:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint16:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint64:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Float16:
		return func(i int) float64 { return float64(a.Value(i).Float32()) }, true
	case *array.Float32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Float64:
		return a.Value, true
	}
	return nil, false
}

// intReader reads cell i of a signed integer column.
func intReader(col arrow.Array) (get func(i int) int64, ok bool) {
	switch a := col.(type) {
	case *array.Int8:
		return func(i int) int64 { return int64(a.Value(i)) }, true
	case *array.Int16:
		return func(i int) int64 { return int64(a.Value(i)) }, true
	case *array.Int32:
		return func(i int) int64 { return int64(a.Value(i)) }, true
	case *array.Int64:
		return a.Value, true
	}
	return nil, false
}

// uintReader reads cell i of an unsigned integer column.
func uintReader(col arrow.Array) (get func(i int) uint64, ok bool) {
	switch a := col.(type) {
	case *array.Uint8:
		return func(i int) uint64 { return uint64(a.Value(i)) }, true
	case *array.Uint16:
		return func(i int) uint64 { return uint64(a.Value(i)) }, true
	case *array.Uint32:
		return func(i int) uint64 { return uint64(a.Value(i)) }, true
	case *array.Uint64:
		return a.Value, true
	}
	return nil, false
}

// presentFloats returns the non-null, non-NaN values of a numeric column,
// the sample the column statistics are computed over.
func presentFloats(col arrow.Array) ([]float64, bool) {
	get, ok := floatReader(col)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, col.Len()-col.NullN())
	for i := 0; i < col.Len(); i++ {
		if col.IsValid(i) {
			if v := get(i); !math.IsNaN(v) {
				out = append(out, v)
			}
		}
	}
	return out, true
}
