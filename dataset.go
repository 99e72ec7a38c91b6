package datajanitor

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Dataset is an immutable in-memory table of named, typed columns sharing one
// row count. It is backed by a single Arrow record; a missing cell is an
// Arrow null.
type Dataset struct {
	rec arrow.Record
}

// NewDataset wraps rec. The Dataset takes its own reference; the caller keeps
// ownership of the one it passed in.
func NewDataset(rec arrow.Record) *Dataset {
	rec.Retain()
	return &Dataset{rec: rec}
}

// NewDatasetFromTable flattens a chunked table into a Dataset.
func NewDatasetFromTable(tbl arrow.Table, mem memory.Allocator) (*Dataset, error) {
	mem = allocatorOr(mem)
	n := int(tbl.NumCols())
	cols := make([]arrow.Array, n)
	defer releaseAll(cols)
	for i := 0; i < n; i++ {
		col := tbl.Column(i)
		chunks := col.Data().Chunks()
		switch len(chunks) {
		case 0:
			b := array.NewBuilder(mem, col.DataType())
			cols[i] = b.NewArray()
			b.Release()
		case 1:
			chunks[0].Retain()
			cols[i] = chunks[0]
		default:
			arr, err := array.Concatenate(chunks, mem)
			if err != nil {
				return nil, fmt.Errorf("datajanitor: concatenating column %q: %w", col.Name(), err)
			}
			cols[i] = arr
		}
	}
	rec := array.NewRecord(tbl.Schema(), cols, tbl.NumRows())
	defer rec.Release()
	return NewDataset(rec), nil
}

// Record returns the backing record. It must not be released by the caller
// unless it was retained first.
func (d *Dataset) Record() arrow.Record { return d.rec }

// Schema returns the Arrow schema of the dataset.
func (d *Dataset) Schema() *arrow.Schema { return d.rec.Schema() }

// NumRows returns the shared row count.
func (d *Dataset) NumRows() int64 { return d.rec.NumRows() }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return int(d.rec.NumCols()) }

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	fields := d.rec.Schema().Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// Column returns the first column with exactly the given name.
func (d *Dataset) Column(name string) (arrow.Array, bool) {
	i := d.columnIndex(name)
	if i < 0 {
		return nil, false
	}
	return d.rec.Column(i), true
}

// Release drops the dataset's reference to its record.
func (d *Dataset) Release() {
	if d != nil && d.rec != nil {
		d.rec.Release()
	}
}

func (d *Dataset) columnIndex(name string) int {
	idx := d.rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return -1
	}
	return idx[0]
}

// withColumns returns a dataset with the same row count and the given
// fields/columns. Schema metadata is carried over.
func (d *Dataset) withColumns(fields []arrow.Field, cols []arrow.Array) *Dataset {
	md := d.rec.Schema().Metadata()
	rec := array.NewRecord(arrow.NewSchema(fields, &md), cols, d.rec.NumRows())
	defer rec.Release()
	return NewDataset(rec)
}

// takeRows returns a dataset holding only the rows where keep is true.
func (d *Dataset) takeRows(mem memory.Allocator, keep []bool) (*Dataset, error) {
	runs := keptRuns(keep)
	var kept int64
	for _, r := range runs {
		kept += r[1] - r[0]
	}
	cols := make([]arrow.Array, d.NumCols())
	defer releaseAll(cols)
	for i, col := range d.rec.Columns() {
		arr, err := takeRuns(mem, col, runs)
		if err != nil {
			return nil, fmt.Errorf("datajanitor: filtering column %q: %w", d.rec.ColumnName(i), err)
		}
		cols[i] = arr
	}
	rec := array.NewRecord(d.rec.Schema(), cols, kept)
	defer rec.Release()
	return NewDataset(rec), nil
}

// keptRuns turns a row mask into half-open [start, end) ranges of kept rows.
func keptRuns(keep []bool) [][2]int64 {
	var runs [][2]int64
	start := -1
	for i, k := range keep {
		switch {
		case k && start < 0:
			start = i
		case !k && start >= 0:
			runs = append(runs, [2]int64{int64(start), int64(i)})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int64{int64(start), int64(len(keep))})
	}
	return runs
}

func takeRuns(mem memory.Allocator, col arrow.Array, runs [][2]int64) (arrow.Array, error) {
	switch len(runs) {
	case 0:
		return array.NewSlice(col, 0, 0), nil
	case 1:
		return array.NewSlice(col, runs[0][0], runs[0][1]), nil
	}
	parts := make([]arrow.Array, len(runs))
	for j, r := range runs {
		parts[j] = array.NewSlice(col, r[0], r[1])
	}
	defer releaseAll(parts)
	return array.Concatenate(parts, mem)
}

func releaseAll(arrs []arrow.Array) {
	for _, a := range arrs {
		if a != nil {
			a.Release()
		}
	}
}

// asDataset accepts the tabular inputs every operation understands. The
// returned release func must be called once the dataset is no longer used.
func asDataset(data any, mem memory.Allocator) (*Dataset, func(), error) {
	switch t := data.(type) {
	case *Dataset:
		if t == nil || t.rec == nil {
			return nil, nil, errDataNotTabular()
		}
		return t, func() {}, nil
	case arrow.Record:
		ds := NewDataset(t)
		return ds, ds.Release, nil
	case arrow.Table:
		ds, err := NewDatasetFromTable(t, mem)
		if err != nil {
			return nil, nil, err
		}
		return ds, ds.Release, nil
	default:
		return nil, nil, errDataNotTabular()
	}
}

func allocatorOr(mem memory.Allocator) memory.Allocator {
	if mem == nil {
		return memory.DefaultAllocator
	}
	return mem
}
