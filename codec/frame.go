package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/crc32"
)

// Binary artifacts start with a fixed header:
//
//	magic   [4]byte  format identifier
//	version uint8    frame layout version
//	crc     uint32   CRC32 (IEEE) of body, little-endian
//	body    []byte   codec payload
const (
	frameVersion    = 1
	frameHeaderSize = 9
)

var (
	magicMsgPack = [4]byte{'S', 'G', 'M', 'P'}
	magicCBOR    = [4]byte{'S', 'G', 'C', 'B'}
)

// ChecksumMismatchError is returned when a frame body fails CRC verification.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

func appendFrame(magic [4]byte, body []byte) []byte {
	out := make([]byte, frameHeaderSize, frameHeaderSize+len(body))
	copy(out, magic[:])
	out[4] = frameVersion
	binary.LittleEndian.PutUint32(out[5:9], crc32.ChecksumIEEE(body))
	return append(out, body...)
}

func openFrame(magic [4]byte, data []byte) ([]byte, error) {
	if len(data) < frameHeaderSize {
		return nil, fmt.Errorf("short input: %d bytes", len(data))
	}
	if [4]byte(data[:4]) != magic {
		return nil, errors.New("invalid magic")
	}
	if data[4] != frameVersion {
		return nil, fmt.Errorf("unsupported frame version %d", data[4])
	}
	body := data[frameHeaderSize:]
	expected := binary.LittleEndian.Uint32(data[5:9])
	if actual := crc32.ChecksumIEEE(body); actual != expected {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return body, nil
}
