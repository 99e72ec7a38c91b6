package datajanitor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// CleanColumnName normalizes one column name: lowercase, whitespace runs and
// underscore runs collapsed to a single underscore, leading and trailing
// underscores stripped.
func CleanColumnName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = reWhitespace.ReplaceAllString(s, "_")
	s = reUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// StandardizeColumns returns a dataset whose column names went through
// CleanColumnName. Column data is shared with the input. A name that cleans
// to "" fails with ErrEmptyColumnName; two names cleaning to the same value
// fail with ErrDuplicateColumnName.
func StandardizeColumns(data any) (*Dataset, error) {
	ds, release, err := asDataset(data, nil)
	if err != nil {
		return nil, err
	}
	defer release()

	fields := append([]arrow.Field(nil), ds.Schema().Fields()...)
	seen := make(map[string]string, len(fields))
	for i, f := range fields {
		clean := CleanColumnName(f.Name)
		if clean == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyColumnName, f.Name)
		}
		if prev, dup := seen[clean]; dup {
			return nil, fmt.Errorf("%w: %q and %q both become %q", ErrDuplicateColumnName, prev, f.Name, clean)
		}
		seen[clean] = f.Name
		fields[i].Name = clean
	}
	cols := ds.rec.Columns()
	for _, c := range cols {
		c.Retain()
	}
	defer releaseAll(cols)
	return ds.withColumns(fields, cols), nil
}
