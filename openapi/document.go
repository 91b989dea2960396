package openapi

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSON serializes the document as indented JSON. Output is byte-identical
// across runs: map keys marshal sorted and properties marshal in
// declaration order.
func (d *Document) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

// YAML serializes the document as YAML with the same ordering guarantees
// as JSON: paths and schema names marshal through their bytewise-sorted
// mapping types, properties in declaration order.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, &SerializationError{Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

// ParseJSON parses a serialized JSON document.
func ParseJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return &d, nil
}

// ParseYAML parses a serialized YAML document.
func ParseYAML(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return &d, nil
}

// LoadFile reads a document from disk, selecting the parser by file
// extension (.json, .yaml, .yml).
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DiscoveryError{Location: path, Err: err}
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}
