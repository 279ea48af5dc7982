package model

import (
	"fmt"
	"math"
)

// FromAny converts a decoded Go value into a Value.
//
// It accepts the shapes produced by the JSON, MessagePack and CBOR decoders:
// every integer width, float32/64, string, []byte, []any and maps keyed by
// strings (map[any]any is accepted when all keys are strings).
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint64(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint64(x)
	case []Value:
		return List(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Value{Kind: KindList, A: arr}, nil
	case map[string]Value:
		return Map(x), nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			vv, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = vv
		}
		return Value{Kind: KindMap, M: m}, nil
	case map[any]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("unsupported map key type %T", k)
			}
			vv, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", ks, err)
			}
			m[ks] = vv
		}
		return Value{Kind: KindMap, M: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromUint64(x uint64) (Value, error) {
	if x > math.MaxInt64 {
		return Value{}, fmt.Errorf("uint64 out of range: %d", x)
	}
	return Int(int64(x)), nil
}

// ToAny converts v into plain Go values: nil, bool, int64, float64, string,
// []byte, []any and map[string]any.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.S
	case KindBytes:
		raw := make([]byte, len(v.Raw))
		copy(raw, v.Raw)
		return raw
	case KindList:
		arr := make([]any, len(v.A))
		for i := range v.A {
			arr[i] = v.A[i].ToAny()
		}
		return arr
	case KindMap:
		m := make(map[string]any, len(v.M))
		for k, e := range v.M {
			m[k] = e.ToAny()
		}
		return m
	default:
		return nil
	}
}
