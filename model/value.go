package model

import (
	"bytes"
	"math"
	"sort"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid is the zero Kind; it never appears in a well-formed snapshot.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents a signed 64-bit integer.
	KindInt
	// KindFloat represents a 64-bit float.
	KindFloat
	// KindString represents a UTF-8 string.
	KindString
	// KindBytes represents a raw byte sequence.
	KindBytes
	// KindList represents an ordered sequence of values.
	KindList
	// KindMap represents a string-keyed mapping of values.
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is a tagged structural value.
//
// Only the field selected by Kind is meaningful. Values built through the
// constructors own their backing slices and maps; treat them as read-only.
type Value struct {
	Kind Kind
	B    bool
	I64  int64
	F64  float64
	S    string
	Raw  []byte
	A    []Value
	M    map[string]Value
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Bytes returns a bytes Value holding a copy of v.
func Bytes(v []byte) Value {
	raw := make([]byte, len(v))
	copy(raw, v)
	return Value{Kind: KindBytes, Raw: raw}
}

// List returns a list Value holding a copy of vs.
func List(vs ...Value) Value {
	a := make([]Value, len(vs))
	copy(a, vs)
	return Value{Kind: KindList, A: a}
}

// Map returns a map Value holding a copy of m.
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{Kind: KindMap, M: cp}
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBytes returns the byte slice if Kind is KindBytes.
func (v Value) AsBytes() ([]byte, bool) {
	if v.Kind != KindBytes {
		return nil, false
	}
	return v.Raw, true
}

// AsList returns the elements if Kind is KindList.
func (v Value) AsList() ([]Value, bool) {
	if v.Kind != KindList {
		return nil, false
	}
	return v.A, true
}

// AsMap returns the entries if Kind is KindMap.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.Kind != KindMap {
		return nil, false
	}
	return v.M, true
}

// Get returns the entry stored under key when v is a map.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}
	e, ok := v.M[key]
	return e, ok
}

// Keys returns the map keys in sorted order, or nil if v is not a map.
func (v Value) Keys() []string {
	if v.Kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.M))
	for k := range v.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and other are structurally identical.
//
// Floats compare by bit pattern, so NaN equals NaN and 0.0 differs from -0.0.
// Nil and empty collections of the same kind are equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull, KindInvalid:
		return true
	case KindBool:
		return v.B == other.B
	case KindInt:
		return v.I64 == other.I64
	case KindFloat:
		return math.Float64bits(v.F64) == math.Float64bits(other.F64)
	case KindString:
		return v.S == other.S
	case KindBytes:
		return bytes.Equal(v.Raw, other.Raw)
	case KindList:
		if len(v.A) != len(other.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(other.A[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.M) != len(other.M) {
			return false
		}
		for k, e := range v.M {
			o, ok := other.M[k]
			if !ok || !e.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
