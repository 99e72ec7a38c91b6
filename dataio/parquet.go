package dataio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	dj "github.com/reoring/datajanitor"
)

// ReadParquet reads a whole Parquet file into a Dataset.
func ReadParquet(r parquet.ReaderAtSeeker, mem memory.Allocator) (*dj.Dataset, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	pf, err := file.NewParquetReader(r, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to create arrow reader: %w", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to read parquet data: %w", err)
	}
	defer tbl.Release()
	return dj.NewDatasetFromTable(tbl, mem)
}

// ReadParquetFile opens path and reads it with ReadParquet.
func ReadParquetFile(path string, mem memory.Allocator) (*dj.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to open parquet file: %w", err)
	}
	defer f.Close()
	return ReadParquet(f, mem)
}

// WriteParquet writes ds as a snappy-compressed Parquet file with the Arrow
// schema stored in the file metadata.
func WriteParquet(w io.Writer, ds *dj.Dataset) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	fw, err := pqarrow.NewFileWriter(ds.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("dataio: failed to create parquet writer: %w", err)
	}
	if err := fw.Write(ds.Record()); err != nil {
		fw.Close()
		return fmt.Errorf("dataio: failed to write parquet: %w", err)
	}
	return fw.Close()
}

// WriteParquetFile creates path and writes ds to it.
func WriteParquetFile(path string, ds *dj.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: failed to create parquet file: %w", err)
	}
	if err := WriteParquet(f, ds); err != nil {
		f.Close()
		return err
	}
	// The parquet writer may already have closed its sink.
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
