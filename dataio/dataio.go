// Package dataio loads and saves datasets as CSV or Parquet files.
package dataio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	dj "github.com/reoring/datajanitor"
)

// Format names a file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ErrUnknownFormat is returned for paths whose extension names no supported format.
var ErrUnknownFormat = errors.New("dataio: unknown data format")

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads the file at path into a Dataset. The caller releases it.
func Load(path string, mem memory.Allocator) (*dj.Dataset, Format, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	var ds *dj.Dataset
	switch f {
	case FormatCSV:
		ds, err = ReadCSVFile(path, mem)
	case FormatParquet:
		ds, err = ReadParquetFile(path, mem)
	}
	if err != nil {
		return nil, f, err
	}
	return ds, f, nil
}

// Save writes ds to path in the format named by its extension.
func Save(path string, ds *dj.Dataset) (Format, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	switch f {
	case FormatCSV:
		err = WriteCSVFile(path, ds)
	case FormatParquet:
		err = WriteParquetFile(path, ds)
	}
	return f, err
}
