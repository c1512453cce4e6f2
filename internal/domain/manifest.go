package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Manifest maps every file the harness loaded to an arbitrary value (usually a content hash).
// Keys keep the order in which they were added or decoded.
type Manifest struct {
	keys   []string
	values map[string]interface{}
}

// NewManifest creates an empty Manifest
func NewManifest() *Manifest {
	return &Manifest{values: make(map[string]interface{})}
}

// Add records a path. Adding an existing path replaces its value but keeps its position.
func (m *Manifest) Add(path string, value interface{}) {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	if _, ok := m.values[path]; !ok {
		m.keys = append(m.keys, path)
	}
	m.values[path] = value
}

// Keys returns the manifest paths in their natural order
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Value returns the value recorded for a path
func (m *Manifest) Value(path string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[path]
	return v, ok
}

// Len returns the number of paths in the manifest
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// UnmarshalJSON decodes a JSON object, preserving the order of its keys.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("manifest must be a JSON object")
	}

	m.keys = nil
	m.values = make(map[string]interface{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read manifest key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected manifest token %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("read manifest value for %s: %w", key, err)
		}
		m.Add(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	return nil
}

// MarshalJSON encodes the manifest as a JSON object with keys in manifest order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode manifest value for %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
