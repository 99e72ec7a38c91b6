package schemafile

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	dj "github.com/reoring/datajanitor"
)

// ParseJSON parses a JSON schema document. The object is read token by token
// so that column order survives. A root that is not an object yields a
// *datajanitor.TypeInputError.
func ParseJSON(data []byte) (*dj.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, notMapping()
	}

	b := newBuilder()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("schemafile: %w", err)
		}
		name, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("schemafile: unexpected token %v", kt)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("schemafile: column %q: %w", name, err)
		}
		d, err := jsonRule(name, raw)
		if err != nil {
			return nil, err
		}
		if err := b.add(name, d); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return b.s, nil
}

func jsonRule(column string, raw json.RawMessage) (ruleDoc, error) {
	var d ruleDoc
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return d, nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, &d.Type); err != nil {
			return d, fmt.Errorf("%w: column %q: %v", ErrInvalidRule, column, err)
		}
		return d, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return d, fmt.Errorf("%w: column %q: %v", ErrInvalidRule, column, err)
		}
		return d, nil
	default:
		return d, fmt.Errorf("%w: column %q: rule must be an object or a type name", ErrInvalidRule, column)
	}
}
