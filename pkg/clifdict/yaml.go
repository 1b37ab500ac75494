package clifdict

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// tableDoc is the serialized form of a Table body. The table name lives in
// the enclosing mapping key, not in the body.
type tableDoc struct {
	Status    Status     `yaml:"status"`
	Variables []Variable `yaml:"variables"`
}

// MarshalYAML serializes the Dictionary with tables as a mapping keyed by
// table name, in declaration order. A plain Go map would lose the
// human-authored ordering, so the mapping node is assembled by hand.
func (d Dictionary) MarshalYAML() (interface{}, error) {
	tables := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, t := range d.Tables {
		key := &yaml.Node{}
		if err := key.Encode(t.Name); err != nil {
			return nil, err
		}
		val := &yaml.Node{}
		if err := val.Encode(tableDoc{Status: t.Status, Variables: t.Variables}); err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		tables.Content = append(tables.Content, key, val)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, pair := range []struct {
		key string
		val interface{}
	}{
		{"version", d.Version},
	} {
		k, v := &yaml.Node{}, &yaml.Node{}
		if err := k.Encode(pair.key); err != nil {
			return nil, err
		}
		if err := v.Encode(pair.val); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, k, v)
	}
	tablesKey := &yaml.Node{}
	if err := tablesKey.Encode("tables"); err != nil {
		return nil, err
	}
	root.Content = append(root.Content, tablesKey, tables)
	return root, nil
}

// UnmarshalYAML reads the mapping form back, preserving table order and
// rejecting duplicate table keys. A table without a status defaults to
// concept, matching build-time behavior for untagged tables.
func (d *Dictionary) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("dictionary document must be a mapping (line %d)", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "version":
			if err := val.Decode(&d.Version); err != nil {
				return fmt.Errorf("version: %w", err)
			}
		case "tables":
			if val.Tag == "!!null" {
				continue
			}
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("tables must be a mapping of table name to definition (line %d)", val.Line)
			}
			seen := make(map[string]bool)
			for j := 0; j+1 < len(val.Content); j += 2 {
				var name string
				if err := val.Content[j].Decode(&name); err != nil {
					return fmt.Errorf("table name: %w", err)
				}
				if seen[name] {
					return fmt.Errorf("duplicate table %q (line %d)", name, val.Content[j].Line)
				}
				seen[name] = true

				var doc tableDoc
				if err := val.Content[j+1].Decode(&doc); err != nil {
					return fmt.Errorf("table %s: %w", name, err)
				}
				if doc.Status == "" {
					doc.Status = StatusConcept
				}
				d.Tables = append(d.Tables, Table{
					Name:      name,
					Status:    doc.Status,
					Variables: doc.Variables,
				})
			}
		}
	}
	return nil
}

// EncodeDictionary serializes a Dictionary to YAML bytes.
// Identical Dictionaries always encode to identical bytes.
func EncodeDictionary(d *Dictionary) ([]byte, error) {
	return encode(d)
}

// DecodeDictionary parses a persisted Dictionary document. Documents that do
// not conform to the Dictionary shape fail with ErrInvalidDictionary.
func DecodeDictionary(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	return &d, nil
}

// EncodeChangelog serializes a Changelog to YAML bytes. The changes mapping
// and every summary map serialize with sorted keys, so output is
// deterministic for a given pair of inputs.
func EncodeChangelog(c *Changelog) ([]byte, error) {
	return encode(c)
}

// DecodeChangelog parses a persisted Changelog document.
func DecodeChangelog(data []byte) (*Changelog, error) {
	var c Changelog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode changelog: %w", err)
	}
	return &c, nil
}

func encode(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
