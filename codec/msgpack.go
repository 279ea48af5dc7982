package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hupe1980/snapgo/model"
)

// MsgPack is the compact binary codec backed by github.com/vmihailenco/msgpack/v5.
//
// The body is MessagePack with sorted map keys and compact integers, wrapped
// in a frame (magic "SGMP", version, CRC32). Ints, floats, strings and bytes
// keep their kinds exactly: bin decodes to []byte and str to string.
type MsgPack struct{}

// Format returns FormatMsgPack.
func (MsgPack) Format() Format { return FormatMsgPack }

// Encode writes the snapshot as a framed MessagePack document.
func (MsgPack) Encode(state *model.StateBlob) ([]byte, error) {
	env, err := envelope(state)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	err = enc.Encode(env.ToAny())
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("codec: msgpack: %w", err)
	}
	return appendFrame(magicMsgPack, buf.Bytes()), nil
}

// Decode parses a framed MessagePack document produced by Encode.
func (MsgPack) Decode(data []byte) (*model.StateBlob, error) {
	body, err := openFrame(magicMsgPack, data)
	if err != nil {
		return nil, malformed(FormatMsgPack, err)
	}

	var r bytes.Reader
	r.Reset(body)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	raw, err := dec.DecodeInterface()
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, malformed(FormatMsgPack, err)
	}
	if r.Len() != 0 {
		return nil, malformed(FormatMsgPack, fmt.Errorf("%d trailing bytes", r.Len()))
	}

	v, err := model.FromAny(raw)
	if err != nil {
		return nil, malformed(FormatMsgPack, err)
	}
	state, err := openEnvelope(v)
	if err != nil {
		return nil, malformed(FormatMsgPack, err)
	}
	return state, nil
}
