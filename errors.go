package snapgo

import (
	"errors"

	"github.com/hupe1980/snapgo/blobstore"
	"github.com/hupe1980/snapgo/codec"
)

var (
	// ErrUnsupportedFormat matches every *UnsupportedFormatError via errors.Is.
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat

	// ErrMalformedInput is returned when encoded input does not match the
	// framing of the claimed format.
	ErrMalformedInput = codec.ErrMalformedInput

	// ErrNotFound matches a restore from a location that does not exist.
	// It is os.ErrNotExist, so errors from the local file system match it
	// without being rewritten.
	ErrNotFound = blobstore.ErrNotFound

	// ErrNoStorage is returned by Persist and Restore on a runtime without
	// persistent storage.
	ErrNoStorage = errors.New("snapgo: runtime has no persistent storage")
)

// UnsupportedFormatError reports a format tag that is unknown or disabled
// on the active runtime.
type UnsupportedFormatError = codec.UnsupportedFormatError
