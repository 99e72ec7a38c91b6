package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	dj "github.com/reoring/datajanitor"
)

// ParseYAML parses a YAML schema document. A document whose root is not a
// mapping yields a *datajanitor.TypeInputError.
func ParseYAML(data []byte) (*dj.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return dj.NewSchema(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return dj.NewSchema(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, notMapping()
	}

	b := newBuilder()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		d, err := yamlRule(key.Value, val)
		if err != nil {
			return nil, err
		}
		if err := b.add(key.Value, d); err != nil {
			return nil, err
		}
	}
	return b.s, nil
}

func yamlRule(column string, n *yaml.Node) (ruleDoc, error) {
	var d ruleDoc
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag != "!!null" {
			d.Type = n.Value
		}
		return d, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i].Value; !ruleKeys[k] {
				return d, fmt.Errorf("%w: column %q: unknown key %q (line %d)", ErrInvalidRule, column, k, n.Content[i].Line)
			}
		}
		if err := n.Decode(&d); err != nil {
			return d, fmt.Errorf("%w: column %q: %v", ErrInvalidRule, column, err)
		}
		return d, nil
	default:
		return d, fmt.Errorf("%w: column %q: rule must be a mapping or a type name (line %d)", ErrInvalidRule, column, n.Line)
	}
}
