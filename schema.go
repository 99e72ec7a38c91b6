package datajanitor

import "sort"

// Schema is an ordered mapping from column name to ColumnRule. Iteration
// follows insertion order. The zero value is an empty schema.
type Schema struct {
	names []string
	rules map[string]ColumnRule
}

// NewSchema returns an empty Schema.
func NewSchema() *Schema { return &Schema{rules: map[string]ColumnRule{}} }

// Set adds or replaces the rule for name. Replacing keeps the original
// position.
func (s *Schema) Set(name string, r ColumnRule) *Schema {
	if s.rules == nil {
		s.rules = map[string]ColumnRule{}
	}
	if _, ok := s.rules[name]; !ok {
		s.names = append(s.names, name)
	}
	s.rules[name] = r
	return s
}

// Names returns the column names in iteration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Rule returns the rule for name.
func (s *Schema) Rule(name string) (ColumnRule, bool) {
	if s == nil {
		return ColumnRule{}, false
	}
	r, ok := s.rules[name]
	return r, ok
}

// Len returns the number of columns in the schema.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// SchemaFromMap builds a Schema from a plain map. Keys are ordered by name so
// that iteration is deterministic.
func SchemaFromMap(m map[string]ColumnRule) *Schema {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := NewSchema()
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// asSchema accepts the schema inputs Validate understands.
func asSchema(v any) (*Schema, bool) {
	switch t := v.(type) {
	case *Schema:
		if t == nil {
			return nil, false
		}
		return t, true
	case Schema:
		return &t, true
	case map[string]ColumnRule:
		return SchemaFromMap(t), true
	default:
		return nil, false
	}
}
