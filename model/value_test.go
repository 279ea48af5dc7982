package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		tests := []struct {
			name     string
			input    any
			expected Value
		}{
			{"nil", nil, Null()},
			{"Value", Int(1), Int(1)},
			{"bool", true, Bool(true)},
			{"string", "héllo ✓", String("héllo ✓")},
			{"float64", 3.14, Float(3.14)},
			{"float32", float32(1.5), Float(1.5)},
			{"int", int(-1), Int(-1)},
			{"int8", int8(1), Int(1)},
			{"int16", int16(1), Int(1)},
			{"int32", int32(1), Int(1)},
			{"int64", int64(math.MinInt64), Int(math.MinInt64)},
			{"uint8", uint8(1), Int(1)},
			{"uint16", uint16(1), Int(1)},
			{"uint32", uint32(math.MaxUint32), Int(math.MaxUint32)},
			{"uint64", uint64(math.MaxInt64), Int(math.MaxInt64)},
			{"bytes", []byte{0, 0xff}, Bytes([]byte{0, 0xff})},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				v, err := FromAny(tc.input)
				require.NoError(t, err)
				assert.True(t, tc.expected.Equal(v), "got %+v", v)
			})
		}
	})

	t.Run("Uint64 Range", func(t *testing.T) {
		_, err := FromAny(uint64(math.MaxInt64) + 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("Nested", func(t *testing.T) {
		v, err := FromAny(map[string]any{
			"list": []any{int64(1), "two", nil},
			"map":  map[any]any{"k": false},
		})
		require.NoError(t, err)

		expected := Map(map[string]Value{
			"list": List(Int(1), String("two"), Null()),
			"map":  Map(map[string]Value{"k": Bool(false)}),
		})
		assert.True(t, expected.Equal(v))
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		assert.Error(t, err)

		_, err = FromAny(map[any]any{1: "x"})
		assert.Error(t, err)
	})
}

func TestToAnyRoundTrip(t *testing.T) {
	v := Map(map[string]Value{
		"n": Null(),
		"b": Bool(true),
		"i": Int(-7),
		"f": Float(2.5),
		"s": String("x"),
		"r": Bytes([]byte("raw")),
		"a": List(Int(1), List()),
		"m": Map(nil),
	})

	back, err := FromAny(v.ToAny())
	require.NoError(t, err)
	assert.True(t, v.Equal(back))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.False(t, Float(0).Equal(Float(math.Copysign(0, -1))))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, String("a").Equal(Bytes([]byte("a"))))
	assert.False(t, List(Int(1)).Equal(List(Int(1), Int(2))))
	assert.False(t, Map(map[string]Value{"a": Int(1)}).Equal(Map(map[string]Value{"b": Int(1)})))
	assert.True(t, List().Equal(Value{Kind: KindList}))
}

func TestConstructorsCopy(t *testing.T) {
	raw := []byte("abc")
	v := Bytes(raw)
	raw[0] = 'z'
	got, ok := v.AsBytes()
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	m := map[string]Value{"a": Int(1)}
	mv := Map(m)
	m["b"] = Int(2)
	assert.Len(t, mv.M, 1)
}

func TestValueAccessors(t *testing.T) {
	v := Map(map[string]Value{"b": Int(2), "a": String("x")})

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	e, ok := v.Get("b")
	require.True(t, ok)
	n, ok := e.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	_, ok = Int(1).Get("a")
	assert.False(t, ok)
	_, ok = Int(1).AsFloat64()
	assert.False(t, ok)
	assert.Nil(t, Int(1).Keys())
	assert.Equal(t, "map", KindMap.String())
}
