// Package schemafile reads declarative validation schemas from YAML or JSON
// documents. Column order in the document becomes the schema's iteration
// order.
//
// A document is a mapping from column name to either a rule object or a bare
// type name:
//
//	age:  {type: int, min: 0, max: 120}
//	salary: {type: float, required: false, min: 0}
//	name: str
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dj "github.com/reoring/datajanitor"
)

var (
	// ErrUnknownFormat is returned by Load for unrecognized file extensions.
	ErrUnknownFormat = errors.New("schemafile: unknown schema format")
	// ErrDuplicateColumn reports a column declared twice in one document.
	ErrDuplicateColumn = errors.New("schemafile: duplicate column")
	// ErrInvalidRule reports a malformed column rule.
	ErrInvalidRule = errors.New("schemafile: invalid rule")
)

// ruleDoc is the wire form of a ColumnRule.
type ruleDoc struct {
	Type     string   `json:"type" yaml:"type"`
	Required *bool    `json:"required" yaml:"required"`
	Min      *float64 `json:"min" yaml:"min"`
	Max      *float64 `json:"max" yaml:"max"`
}

var ruleKeys = map[string]bool{"type": true, "required": true, "min": true, "max": true}

func (d ruleDoc) rule(column string) (dj.ColumnRule, error) {
	r := dj.ColumnRule{Required: d.Required, Min: d.Min, Max: d.Max}
	if d.Type != "" {
		k, ok := dj.ParseKind(d.Type)
		if !ok {
			return r, fmt.Errorf("%w: column %q: unknown type %q", ErrInvalidRule, column, d.Type)
		}
		r.Type = k
	}
	if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
		return r, fmt.Errorf("%w: column %q: min %v is greater than max %v", ErrInvalidRule, column, *d.Min, *d.Max)
	}
	return r, nil
}

func notMapping() error { return &dj.TypeInputError{Message: "Schema must be a mapping"} }

// builder accumulates columns and rejects duplicates.
type builder struct {
	s    *dj.Schema
	seen map[string]bool
}

func newBuilder() *builder { return &builder{s: dj.NewSchema(), seen: map[string]bool{}} }

func (b *builder) add(name string, d ruleDoc) error {
	if b.seen[name] {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	b.seen[name] = true
	r, err := d.rule(name)
	if err != nil {
		return err
	}
	b.s.Set(name, r)
	return nil
}

// Load reads a schema file, choosing the format by extension
// (.yaml, .yml or .json).
func Load(path string) (*dj.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
