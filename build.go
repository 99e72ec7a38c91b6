package datajanitor

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ColumnData describes one column for FromColumns. A nil entry in Values is a
// missing cell.
type ColumnData struct {
	Name   string
	Type   arrow.DataType
	Values []any
}

// Int64Column describes an int64 column.
func Int64Column(name string, vals ...any) ColumnData {
	return ColumnData{Name: name, Type: arrow.PrimitiveTypes.Int64, Values: vals}
}

// Float64Column describes a float64 column.
func Float64Column(name string, vals ...any) ColumnData {
	return ColumnData{Name: name, Type: arrow.PrimitiveTypes.Float64, Values: vals}
}

// StringColumn describes a utf8 column.
func StringColumn(name string, vals ...any) ColumnData {
	return ColumnData{Name: name, Type: arrow.BinaryTypes.String, Values: vals}
}

// BoolColumn describes a boolean column.
func BoolColumn(name string, vals ...any) ColumnData {
	return ColumnData{Name: name, Type: arrow.FixedWidthTypes.Boolean, Values: vals}
}

// FromColumns builds a Dataset from plain Go values. All columns must have the
// same length.
func FromColumns(mem memory.Allocator, cols ...ColumnData) (*Dataset, error) {
	mem = allocatorOr(mem)
	nrows := -1
	fields := make([]arrow.Field, len(cols))
	arrs := make([]arrow.Array, len(cols))
	defer releaseAll(arrs)
	for i, cd := range cols {
		if nrows < 0 {
			nrows = len(cd.Values)
		} else if len(cd.Values) != nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrColumnLength, cd.Name, len(cd.Values), nrows)
		}
		arr, err := buildColumn(mem, cd)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: cd.Name, Type: cd.Type, Nullable: true}
		arrs[i] = arr
	}
	if nrows < 0 {
		nrows = 0
	}
	rec := array.NewRecord(arrow.NewSchema(fields, nil), arrs, int64(nrows))
	defer rec.Release()
	return NewDataset(rec), nil
}

func buildColumn(mem memory.Allocator, cd ColumnData) (arrow.Array, error) {
	b := array.NewBuilder(mem, cd.Type)
	defer b.Release()
	b.Reserve(len(cd.Values))
	for row, v := range cd.Values {
		if v == nil {
			b.AppendNull()
			continue
		}
		if !appendGo(b, v) {
			return nil, fmt.Errorf("datajanitor: column %q row %d: cannot store %T as %s", cd.Name, row, v, cd.Type)
		}
	}
	return b.NewArray(), nil
}

// appendGo appends a Go value to a builder of a compatible type.
func appendGo(b array.Builder, v any) bool {
	switch bb := b.(type) {
	case *array.Int64Builder:
		n, ok := goInt64(v)
		if ok {
			bb.Append(n)
		}
		return ok
	case *array.Float64Builder:
		f, ok := goFloat64(v)
		if ok {
			bb.Append(f)
		}
		return ok
	case *array.StringBuilder:
		s, ok := v.(string)
		if ok {
			bb.Append(s)
		}
		return ok
	case *array.BooleanBuilder:
		t, ok := v.(bool)
		if ok {
			bb.Append(t)
		}
		return ok
	}
	return false
}

func goInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func goFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
