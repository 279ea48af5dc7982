package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/snapgo/model"
)

// bytesKey tags a single-entry object carrying base64 data. Map keys that
// start with '$' are written with an extra '$' so they never collide with it.
const bytesKey = "$bytes"

// JSON is the textual codec backed by github.com/goccy/go-json.
//
// Notes:
//   - Floats are always written with a fraction or exponent, so ints and floats
//     keep their kind across a round trip.
//   - Bytes are written as {"$bytes": "<base64>"}.
//   - NaN and ±Inf have no JSON form and fail to encode.
type JSON struct{}

// Format returns FormatJSON.
func (JSON) Format() Format { return FormatJSON }

// Encode writes the snapshot as a JSON document.
func (JSON) Encode(state *model.StateBlob) ([]byte, error) {
	env, err := envelope(state)
	if err != nil {
		return nil, err
	}
	doc, err := toJSON(env)
	if err != nil {
		return nil, fmt.Errorf("codec: json: %w", err)
	}
	return gojson.Marshal(doc)
}

// Decode parses a JSON document produced by Encode.
func (JSON) Decode(data []byte) (*model.StateBlob, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, malformed(FormatJSON, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, malformed(FormatJSON, errors.New("trailing data after document"))
	}

	v, err := fromJSON(raw)
	if err != nil {
		return nil, malformed(FormatJSON, err)
	}
	state, err := openEnvelope(v)
	if err != nil {
		return nil, malformed(FormatJSON, err)
	}
	return state, nil
}

// jsonFloat marshals a float64 so that it always reads back as a float.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	b := strconv.AppendFloat(nil, float64(f), 'g', -1, 64)
	if !bytes.ContainsAny(b, ".e") {
		b = append(b, '.', '0')
	}
	return b, nil
}

func toJSON(v model.Value) (any, error) {
	switch v.Kind {
	case model.KindNull:
		return nil, nil
	case model.KindBool:
		return v.B, nil
	case model.KindInt:
		return v.I64, nil
	case model.KindFloat:
		if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
			return nil, fmt.Errorf("unsupported float value %v", v.F64)
		}
		return jsonFloat(v.F64), nil
	case model.KindString:
		return v.S, nil
	case model.KindBytes:
		return map[string]any{bytesKey: base64.StdEncoding.EncodeToString(v.Raw)}, nil
	case model.KindList:
		arr := make([]any, len(v.A))
		for i := range v.A {
			e, err := toJSON(v.A[i])
			if err != nil {
				return nil, err
			}
			arr[i] = e
		}
		return arr, nil
	case model.KindMap:
		m := make(map[string]any, len(v.M))
		for k, e := range v.M {
			je, err := toJSON(e)
			if err != nil {
				return nil, err
			}
			if strings.HasPrefix(k, "$") {
				k = "$" + k
			}
			m[k] = je
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.Kind)
	}
}

func fromJSON(raw any) (model.Value, error) {
	switch x := raw.(type) {
	case nil:
		return model.Null(), nil
	case bool:
		return model.Bool(x), nil
	case string:
		return model.String(x), nil
	case gojson.Number:
		s := x.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return model.Value{}, err
			}
			return model.Float(f), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return model.Value{}, err
		}
		return model.Int(n), nil
	case []any:
		arr := make([]model.Value, len(x))
		for i := range x {
			e, err := fromJSON(x[i])
			if err != nil {
				return model.Value{}, err
			}
			arr[i] = e
		}
		return model.Value{Kind: model.KindList, A: arr}, nil
	case map[string]any:
		if enc, ok := x[bytesKey]; ok && len(x) == 1 {
			s, ok := enc.(string)
			if !ok {
				return model.Value{}, fmt.Errorf("%s payload is %T, not string", bytesKey, enc)
			}
			raw, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return model.Value{}, err
			}
			return model.Value{Kind: model.KindBytes, Raw: raw}, nil
		}
		m := make(map[string]model.Value, len(x))
		for k, e := range x {
			if strings.HasPrefix(k, "$") {
				if !strings.HasPrefix(k, "$$") {
					return model.Value{}, fmt.Errorf("unexpected reserved key %q", k)
				}
				k = k[1:]
			}
			v, err := fromJSON(e)
			if err != nil {
				return model.Value{}, err
			}
			m[k] = v
		}
		return model.Value{Kind: model.KindMap, M: m}, nil
	default:
		return model.Value{}, fmt.Errorf("unexpected JSON value %T", raw)
	}
}
