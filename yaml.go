package simplecsv

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// NewFromYAML decodes data as a YAML sequence of flat mappings and encodes it
// like [New]. Mapping key order becomes field order.
func NewFromYAML(data []byte, filename string, opts ...Option) (*Encoder, error) {
	records, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return New(records, filename, opts...)
}

// DecodeYAML parses a YAML sequence of flat mappings into records, keeping key
// order. Timestamps become date values. Repeated keys behave as in
// [DecodeJSON].
func DecodeYAML(data []byte) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidYAML, err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidYAML)
	}
	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolveAlias(root.Content[0])
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: got %s", ErrNotSequence, yamlKindName(root))
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		r, err := yamlRecord(resolveAlias(item), i)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func yamlRecord(n *yaml.Node, index int) (Record, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return Record{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: element %d is %s, not a mapping", ErrUnsupportedValue, index, yamlKindName(n))
	}
	r := make(Record, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i]).Value
		v, err := yamlValue(resolveAlias(n.Content[i+1]))
		if err != nil {
			return nil, fmt.Errorf("element %d key %q: %w", index, key, err)
		}
		r = r.set(key, v)
	}
	return r, nil
}

func yamlValue(n *yaml.Node) (Value, error) {
	if n.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("%w: nested %s", ErrUnsupportedValue, yamlKindName(n))
	}
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInvalidYAML, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInvalidYAML, err)
		}
		return Number(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInvalidYAML, err)
		}
		return Date(t), nil
	default:
		return String(n.Value), nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + n.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
