package datajanitor_test

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	dj "github.com/reoring/datajanitor"
)

func TestFromColumns_Shape(t *testing.T) {
	ds := mustDataset(t,
		dj.Int64Column("id", 1, 2, nil),
		dj.StringColumn("name", "a", nil, "c"),
	)
	if ds.NumRows() != 3 || ds.NumCols() != 2 {
		t.Fatalf("shape = %dx%d", ds.NumRows(), ds.NumCols())
	}
	if got := ds.ColumnNames(); !equalStrings(got, []string{"id", "name"}) {
		t.Fatalf("names = %v", got)
	}
	col, ok := ds.Column("id")
	if !ok || col.NullN() != 1 || !col.IsNull(2) {
		t.Fatalf("expected one null at row 2")
	}
	if _, ok := ds.Column("ID"); ok {
		t.Fatalf("column lookup must be exact")
	}
}

func TestFromColumns_Errors(t *testing.T) {
	_, err := dj.FromColumns(nil, dj.Int64Column("a", 1, 2), dj.Int64Column("b", 1))
	if !errors.Is(err, dj.ErrColumnLength) {
		t.Fatalf("err = %v; want ErrColumnLength", err)
	}
	if _, err := dj.FromColumns(nil, dj.Int64Column("a", "x")); err == nil {
		t.Fatalf("expected a value type error")
	}
}

func TestNewDatasetFromTable_ConcatenatesChunks(t *testing.T) {
	a := int32Record(t, "v", []int32{1, 2}, nil)
	b := int32Record(t, "v", []int32{3}, nil)
	tbl := array.NewTableFromRecords(a.Schema(), []arrow.Record{a, b})
	defer tbl.Release()
	ds, err := dj.NewDatasetFromTable(tbl, memory.NewGoAllocator())
	if err != nil {
		t.Fatalf("NewDatasetFromTable: %v", err)
	}
	defer ds.Release()
	if got := cells(t, ds, "v"); !equalStrings(got, []string{"1", "2", "3"}) {
		t.Fatalf("v = %v", got)
	}
}

func TestTransforms_AcceptRecords(t *testing.T) {
	rec := int32Record(t, "V a l", []int32{1, 2}, nil)
	out, err := dj.StandardizeColumns(rec)
	if err != nil {
		t.Fatalf("StandardizeColumns: %v", err)
	}
	defer out.Release()
	if got := out.ColumnNames(); !equalStrings(got, []string{"v_a_l"}) {
		t.Fatalf("names = %v", got)
	}
}
