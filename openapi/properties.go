package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Properties is an insertion-ordered map of property name to schema.
// Declaration order is stable and meaningful to a reader, so unlike path
// and component keys it is preserved through serialization rather than
// sorted.
type Properties struct {
	keys []string
	m    map[string]*Schema
}

// NewProperties creates an empty property map.
func NewProperties() *Properties {
	return &Properties{m: make(map[string]*Schema)}
}

// Set stores a property schema. Setting an existing name replaces the
// schema in place without changing its position.
func (p *Properties) Set(name string, s *Schema) {
	if p.m == nil {
		p.m = make(map[string]*Schema)
	}
	if _, ok := p.m[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.m[name] = s
}

// Get returns the schema for a property name.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.m[name]
	return s, ok
}

// Len returns the number of properties. nil safe.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

// IsZero implements the yaml.v3 IsZeroer interface so omitempty omits an
// empty property map.
func (p *Properties) IsZero() bool {
	return p.Len() == 0
}

// MarshalJSON encodes the properties as a JSON object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.m[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties: expected JSON object, got %v", tok)
	}

	p.keys = nil
	p.m = make(map[string]*Schema)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("properties: expected string key, got %v", keyTok)
		}
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return err
		}
		p.Set(key, &s)
	}

	_, err = dec.Token() // closing brace
	return err
}

// MarshalYAML encodes the properties as a YAML mapping in insertion order.
func (p *Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range p.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(p.m[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping preserving its key order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected YAML mapping, got kind %d", node.Kind)
	}

	p.keys = nil
	p.m = make(map[string]*Schema)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var s Schema
		if err := node.Content[i+1].Decode(&s); err != nil {
			return err
		}
		p.Set(key, &s)
	}
	return nil
}
