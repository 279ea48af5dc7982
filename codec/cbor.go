package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/hupe1980/snapgo/model"
)

var (
	cborEncMode = mustEncMode(cbor.EncOptions{
		Sort:       cbor.SortCanonical,
		NaNConvert: cbor.NaNConvertNone,
	})
	cborDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		IntDec:         cbor.IntDecConvertSigned,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Errorf("codec: cbor encode options: %w", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Errorf("codec: cbor decode options: %w", err))
	}
	return dm
}

// CBOR is the general-purpose binary container codec backed by
// github.com/fxamacker/cbor/v2.
//
// The body is canonical CBOR (RFC 8949 map ordering) wrapped in a frame
// (magic "SGCB", version, CRC32). Kinds are preserved as with MsgPack, and
// floats keep their exact bits, NaN payloads included.
type CBOR struct{}

// Format returns FormatCBOR.
func (CBOR) Format() Format { return FormatCBOR }

// Encode writes the snapshot as a framed CBOR document.
func (CBOR) Encode(state *model.StateBlob) ([]byte, error) {
	env, err := envelope(state)
	if err != nil {
		return nil, err
	}
	body, err := cborEncMode.Marshal(env.ToAny())
	if err != nil {
		return nil, fmt.Errorf("codec: cbor: %w", err)
	}
	return appendFrame(magicCBOR, body), nil
}

// Decode parses a framed CBOR document produced by Encode.
func (CBOR) Decode(data []byte) (*model.StateBlob, error) {
	body, err := openFrame(magicCBOR, data)
	if err != nil {
		return nil, malformed(FormatCBOR, err)
	}

	var raw any
	if err := cborDecMode.Unmarshal(body, &raw); err != nil {
		return nil, malformed(FormatCBOR, err)
	}

	v, err := model.FromAny(raw)
	if err != nil {
		return nil, malformed(FormatCBOR, err)
	}
	state, err := openEnvelope(v)
	if err != nil {
		return nil, malformed(FormatCBOR, err)
	}
	return state, nil
}
