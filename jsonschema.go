package datajanitor

import js "github.com/reoring/datajanitor/jsonschema"

// jsonTypes maps logical kinds to JSON Schema types. Object columns accept
// any JSON value and carry no type.
var jsonTypes = map[Kind]string{
	KindInt:   "integer",
	KindFloat: "number",
	KindStr:   "string",
	KindBool:  "boolean",
}

// JSONSchema projects the schema onto one row of the dataset: each column is
// a property, required columns are listed in "required", and extra columns
// are allowed.
func (s *Schema) JSONSchema() *js.Schema {
	out := &js.Schema{
		Dialect:              js.Draft,
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, s.Len()),
		AdditionalProperties: true,
	}
	for _, name := range s.Names() {
		r, _ := s.Rule(name)
		p := &js.Schema{Type: jsonTypes[r.Type], Minimum: r.Min, Maximum: r.Max}
		if r.HasBounds() && p.Type == "" {
			p.Type = "number"
		}
		out.Properties[name] = p
		if r.IsRequired() {
			out.Required = append(out.Required, name)
		}
	}
	return out
}
