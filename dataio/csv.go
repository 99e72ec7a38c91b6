package dataio

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	dj "github.com/reoring/datajanitor"
)

// ReadCSV reads a headed CSV stream, inferring column types from the data.
// Empty fields become nulls.
func ReadCSV(r io.Reader, mem memory.Allocator) (*dj.Dataset, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	seen := &headCapture{max: maxHeaderBytes}
	rdr := csv.NewInferringReader(io.TeeReader(r, seen),
		csv.WithHeader(true),
		csv.WithNullReader(true, ""),
		csv.WithAllocator(mem),
	)
	defer rdr.Release()

	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for rdr.Next() {
		rec := rdr.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataio: reading csv: %w", err)
	}
	if len(recs) == 0 {
		return emptyCSV(rdr.Schema(), seen.buf.Bytes(), mem)
	}

	tbl := array.NewTableFromRecords(recs[0].Schema(), recs)
	defer tbl.Release()
	return dj.NewDatasetFromTable(tbl, mem)
}

const maxHeaderBytes = 1 << 20

// headCapture keeps the first max bytes written to it.
type headCapture struct {
	buf bytes.Buffer
	max int
}

func (h *headCapture) Write(p []byte) (int, error) {
	if room := h.max - h.buf.Len(); room > 0 {
		h.buf.Write(p[:min(len(p), room)])
	}
	return len(p), nil
}

// emptyCSV builds the zero-row dataset of a CSV holding only a header. With
// no data to infer from, the columns are strings.
func emptyCSV(schema *arrow.Schema, raw []byte, mem memory.Allocator) (*dj.Dataset, error) {
	if schema == nil {
		header, err := stdcsv.NewReader(bytes.NewReader(raw)).Read()
		if err == io.EOF {
			return nil, fmt.Errorf("dataio: csv has no header")
		}
		if err != nil {
			return nil, fmt.Errorf("dataio: reading csv header: %w", err)
		}
		fields := make([]arrow.Field, len(header))
		for i, name := range header {
			fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
		}
		schema = arrow.NewSchema(fields, nil)
	}
	cols := make([]arrow.Array, schema.NumFields())
	for i, f := range schema.Fields() {
		b := array.NewBuilder(mem, f.Type)
		cols[i] = b.NewArray()
		b.Release()
	}
	rec := array.NewRecord(schema, cols, 0)
	for _, c := range cols {
		c.Release()
	}
	defer rec.Release()
	return dj.NewDataset(rec), nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string, mem memory.Allocator) (*dj.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to open csv file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, mem)
}

// WriteCSV writes ds with a header row. Nulls are written as empty fields.
func WriteCSV(w io.Writer, ds *dj.Dataset) error {
	cw := csv.NewWriter(w, ds.Schema(), csv.WithHeader(true), csv.WithNullWriter(""))
	if err := cw.Write(ds.Record()); err != nil {
		return fmt.Errorf("dataio: failed to write csv: %w", err)
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("dataio: failed to flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile creates path and writes ds to it.
func WriteCSVFile(path string, ds *dj.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: failed to create csv file: %w", err)
	}
	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
