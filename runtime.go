package snapgo

import (
	"slices"

	"github.com/hupe1980/snapgo/codec"
)

// Runtime describes the capabilities of the environment a Persister runs in.
//
// Format support is deployment configuration: list exactly the formats the
// environment can encode and decode.
type Runtime struct {
	// Name identifies the runtime in errors and logs.
	Name string
	// NativeByteBuffers is false when encoded bytes must cross the API
	// boundary as text. Compact-binary artifacts are then hex strings.
	NativeByteBuffers bool
	// Filesystem reports whether Persist and Restore may touch storage.
	Filesystem bool
	// Formats lists the enabled formats. Nil enables every known format.
	Formats []codec.Format
}

// Supports reports whether f is known and enabled on r.
func (r Runtime) Supports(f codec.Format) bool {
	if !f.Known() {
		return false
	}
	if r.Formats == nil {
		return true
	}
	return slices.Contains(r.Formats, f)
}

// check returns an *UnsupportedFormatError when f cannot be used on r.
func (r Runtime) check(f codec.Format) error {
	if !f.Known() {
		return &UnsupportedFormatError{Format: f}
	}
	if !r.Supports(f) {
		return &UnsupportedFormatError{Format: f, Runtime: r.Name}
	}
	return nil
}

var (
	// ServerRuntime is a process with a filesystem and native byte buffers.
	// All formats are enabled.
	ServerRuntime = Runtime{
		Name:              "server",
		NativeByteBuffers: true,
		Filesystem:        true,
	}

	// SandboxRuntime has no filesystem and can only pass text across its
	// boundary. Only Export and Import work; compact-binary travels as hex.
	SandboxRuntime = Runtime{
		Name: "sandbox",
	}

	// RestrictedRuntime is a server process without the general-binary
	// container encoder.
	RestrictedRuntime = Runtime{
		Name:              "restricted",
		NativeByteBuffers: true,
		Filesystem:        true,
		Formats:           []codec.Format{codec.FormatJSON, codec.FormatMsgPack},
	}
)
