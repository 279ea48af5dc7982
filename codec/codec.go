// Package codec converts snapshots to and from their encoded representations.
//
// Each Format has exactly one Codec. Formats are selected by explicit tag;
// content is never sniffed. Changing a codec's wire layout is a breaking
// change: artifacts written by older layouts may no longer decode.
package codec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/snapgo/model"
)

// Format is the tag identifying an encoding.
type Format string

const (
	// FormatJSON is the human-readable textual format.
	FormatJSON Format = "json"
	// FormatMsgPack is the compact length-prefixed binary format.
	FormatMsgPack Format = "msgpack"
	// FormatCBOR is the general-purpose schema-less binary container format.
	FormatCBOR Format = "cbor"

	// DefaultFormat is used when the caller does not name a format.
	DefaultFormat = FormatMsgPack
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatMsgPack, FormatCBOR}
}

// Known reports whether f is a supported format tag.
func (f Format) Known() bool {
	switch f {
	case FormatJSON, FormatMsgPack, FormatCBOR:
		return true
	default:
		return false
	}
}

// Extension returns the canonical file extension (without dot).
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgPack:
		return "msp"
	case FormatCBOR:
		return "cbor"
	default:
		return ""
	}
}

// Textual reports whether the encoded form is printable text.
func (f Format) Textual() bool { return f == FormatJSON }

// String returns the tag.
func (f Format) String() string { return string(f) }

// ParseFormat resolves a tag, mapping the empty tag to DefaultFormat.
func ParseFormat(tag string) (Format, error) {
	if tag == "" {
		return DefaultFormat, nil
	}
	f := Format(tag)
	if !f.Known() {
		return "", &UnsupportedFormatError{Format: f}
	}
	return f, nil
}

var (
	// ErrMalformedInput is returned when encoded bytes do not match the
	// framing of the claimed format.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedFormat matches every *UnsupportedFormatError via errors.Is.
	ErrUnsupportedFormat = errors.New("unsupported serialization format")
)

// UnsupportedFormatError reports an unknown format tag, or a known one that
// the active runtime disables.
type UnsupportedFormatError struct {
	Format  Format
	Runtime string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Runtime != "" {
		return fmt.Sprintf("unsupported serialization format: %s (not available on runtime %s)", e.Format, e.Runtime)
	}
	return fmt.Sprintf("unsupported serialization format: %s", e.Format)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) hold.
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func malformed(f Format, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedInput, f, err)
}

// Codec encodes and decodes snapshots for one format.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	// Encode serializes the state. decode(encode(x)) is structurally equal to x.
	Encode(state *model.StateBlob) ([]byte, error)
	// Decode parses data; framing violations yield ErrMalformedInput.
	Decode(data []byte) (*model.StateBlob, error)
	// Format returns the tag this codec implements.
	Format() Format
}

// ByFormat returns the built-in codec for f.
func ByFormat(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return JSON{}, nil
	case FormatMsgPack:
		return MsgPack{}, nil
	case FormatCBOR:
		return CBOR{}, nil
	default:
		return nil, &UnsupportedFormatError{Format: f}
	}
}
