package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/hupe1980/snapgo/model"
)

const (
	keyIndex  = "index"
	keyDocs   = "docs"
	keyNodes  = "nodes"
	keySchema = "schema"
)

// envelope lays out a snapshot as the top-level map every format encodes.
func envelope(state *model.StateBlob) (model.Value, error) {
	if err := state.Validate(); err != nil {
		return model.Value{}, fmt.Errorf("codec: invalid state: %w", err)
	}
	for _, section := range []model.Value{state.Index, state.Docs, state.Nodes, state.Schema.ToValue()} {
		if err := checkText(section); err != nil {
			return model.Value{}, fmt.Errorf("codec: invalid state: %w", err)
		}
	}
	return model.Value{Kind: model.KindMap, M: map[string]model.Value{
		keyIndex:  state.Index,
		keyDocs:   state.Docs,
		keyNodes:  state.Nodes,
		keySchema: state.Schema.ToValue(),
	}}, nil
}

// openEnvelope is the inverse of envelope. Any deviation from the four-key
// layout is reported as an error for the caller to wrap as malformed.
func openEnvelope(v model.Value) (*model.StateBlob, error) {
	m, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not map", v.Kind)
	}
	if len(m) != 4 {
		return nil, fmt.Errorf("top-level map has %d keys, want 4", len(m))
	}
	state := &model.StateBlob{}
	for _, key := range []string{keyIndex, keyDocs, keyNodes, keySchema} {
		if _, ok := m[key]; !ok {
			return nil, fmt.Errorf("missing %q section", key)
		}
	}
	state.Index = m[keyIndex]
	state.Docs = m[keyDocs]
	state.Nodes = m[keyNodes]

	schema, err := model.SchemaFromValue(m[keySchema])
	if err != nil {
		return nil, err
	}
	state.Schema = schema
	return state, nil
}

// ErrInvalidText is returned when a string or map key is not valid UTF-8.
// Text formats cannot carry such strings, so no codec accepts them.
var ErrInvalidText = errors.New("string is not valid UTF-8")

func checkText(v model.Value) error {
	switch v.Kind {
	case model.KindString:
		if !utf8.ValidString(v.S) {
			return fmt.Errorf("%w: %q", ErrInvalidText, v.S)
		}
	case model.KindList:
		for i := range v.A {
			if err := checkText(v.A[i]); err != nil {
				return err
			}
		}
	case model.KindMap:
		for k, e := range v.M {
			if !utf8.ValidString(k) {
				return fmt.Errorf("%w: key %q", ErrInvalidText, k)
			}
			if err := checkText(e); err != nil {
				return err
			}
		}
	}
	return nil
}
