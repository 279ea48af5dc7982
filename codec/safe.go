package codec

import (
	"encoding/hex"
	"fmt"
)

// ToSafeString renders arbitrary bytes as lowercase hex so they can cross a
// text-only boundary.
func ToSafeString(data []byte) string {
	return hex.EncodeToString(data)
}

// FromSafeString is the exact inverse of ToSafeString.
func FromSafeString(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: safe string: %w", ErrMalformedInput, err)
	}
	return data, nil
}

// NeedsSafeString reports whether artifacts of format f must be carried as
// safe strings on a runtime with or without native byte buffers.
func NeedsSafeString(f Format, nativeByteBuffers bool) bool {
	return f == FormatMsgPack && !nativeByteBuffers
}
