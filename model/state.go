package model

import (
	"errors"
	"fmt"
	"sort"
)

// FieldType is the primitive type declared for a schema field.
type FieldType string

const (
	// FieldString declares a full-text indexed string field.
	FieldString FieldType = "string"
	// FieldNumber declares a numeric field.
	FieldNumber FieldType = "number"
	// FieldBoolean declares a boolean field.
	FieldBoolean FieldType = "boolean"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldString, FieldNumber, FieldBoolean:
		return true
	default:
		return false
	}
}

// ErrInvalidSchema is returned when a schema declaration is malformed.
var ErrInvalidSchema = errors.New("invalid schema")

// Schema maps field names to field types.
type Schema map[string]FieldType

// Validate checks field names and types.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}
	for name, typ := range s {
		if name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidSchema)
		}
		if !typ.Valid() {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidSchema, name, typ)
		}
	}
	return nil
}

// Fields returns the field names in sorted order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of s.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	cp := make(Schema, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// ToValue encodes the schema as a map of type names.
func (s Schema) ToValue() Value {
	m := make(map[string]Value, len(s))
	for name, typ := range s {
		m[name] = String(string(typ))
	}
	return Value{Kind: KindMap, M: m}
}

// SchemaFromValue decodes a schema previously encoded with ToValue.
func SchemaFromValue(v Value) (Schema, error) {
	entries, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: expected map, got %s", ErrInvalidSchema, v.Kind)
	}
	s := make(Schema, len(entries))
	for name, e := range entries {
		typ, ok := e.AsString()
		if !ok {
			return nil, fmt.Errorf("%w: field %q type is %s, not string", ErrInvalidSchema, name, e.Kind)
		}
		s[name] = FieldType(typ)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// StateBlob is the exported mutable state of one database.
//
// It holds no references into the live database: Index, Docs and Nodes are
// values built at capture time and Schema is a copy.
type StateBlob struct {
	Index  Value
	Docs   Value
	Nodes  Value
	Schema Schema
}

// Validate checks that every section is present and the schema is well formed.
func (s *StateBlob) Validate() error {
	if s == nil {
		return errors.New("nil state")
	}
	for name, v := range map[string]Value{"index": s.Index, "docs": s.Docs, "nodes": s.Nodes} {
		if v.Kind == KindInvalid {
			return fmt.Errorf("state section %q is missing", name)
		}
	}
	return s.Schema.Validate()
}

// Equal reports whether s and other carry structurally identical state.
func (s *StateBlob) Equal(other *StateBlob) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Schema) != len(other.Schema) {
		return false
	}
	for k, v := range s.Schema {
		if other.Schema[k] != v {
			return false
		}
	}
	return s.Index.Equal(other.Index) && s.Docs.Equal(other.Docs) && s.Nodes.Equal(other.Nodes)
}
