package datajanitor

import "github.com/reoring/datajanitor/internal/kinds"

// Kind is the logical category of a column, abstracting over physical
// storage widths.
type Kind = kinds.Kind

const (
	KindInt    = kinds.Int
	KindFloat  = kinds.Float
	KindStr    = kinds.Str
	KindBool   = kinds.Bool
	KindObject = kinds.Object
)

// ParseKind converts "int", "float", "str", "bool" or "object" into a Kind.
func ParseKind(s string) (Kind, bool) { return kinds.Parse(s) }

// ColumnRule holds the constraints attached to one schema key.
type ColumnRule struct {
	Type     Kind     // Empty means no type check.
	Required *bool    // nil means required.
	Min      *float64 // Inclusive lower bound, numeric columns only.
	Max      *float64 // Inclusive upper bound, numeric columns only.
}

// IsRequired reports whether the column must be present.
func (r ColumnRule) IsRequired() bool { return r.Required == nil || *r.Required }

// HasBounds reports whether either bound is set.
func (r ColumnRule) HasBounds() bool { return r.Min != nil || r.Max != nil }

// Optional returns a copy of r that tolerates an absent column.
func (r ColumnRule) Optional() ColumnRule {
	r.Required = Bool(false)
	return r
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
