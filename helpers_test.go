package datajanitor_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	dj "github.com/reoring/datajanitor"
)

func mustDataset(t *testing.T, cols ...dj.ColumnData) *dj.Dataset {
	t.Helper()
	ds, err := dj.FromColumns(memory.DefaultAllocator, cols...)
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	t.Cleanup(ds.Release)
	return ds
}

// cells renders a column as strings, "(null)" for missing cells.
func cells(t *testing.T, ds *dj.Dataset, name string) []string {
	t.Helper()
	col, ok := ds.Column(name)
	if !ok {
		t.Fatalf("column %q not found in %v", name, ds.ColumnNames())
	}
	out := make([]string, col.Len())
	for i := range out {
		out[i] = col.ValueStr(i)
	}
	return out
}

func float64s(t *testing.T, ds *dj.Dataset, name string) []float64 {
	t.Helper()
	col, ok := ds.Column(name)
	if !ok {
		t.Fatalf("column %q not found", name)
	}
	f, ok := col.(*array.Float64)
	if !ok {
		t.Fatalf("column %q is %s, want float64", name, col.DataType())
	}
	return f.Float64Values()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int32Record(t *testing.T, name string, vals []int32, valid []bool) arrow.Record {
	t.Helper()
	b := array.NewInt32Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	arr := b.NewArray()
	defer arr.Release()
	schema := arrow.NewSchema([]arrow.Field{{Name: name, Type: arrow.PrimitiveTypes.Int32, Nullable: true}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, int64(len(vals)))
	t.Cleanup(rec.Release)
	return rec
}
