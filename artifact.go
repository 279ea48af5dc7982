package snapgo

// Artifact is an encoded snapshot held in memory.
//
// Binary formats produce byte artifacts. The textual format, and the
// compact-binary format on runtimes without native byte buffers, produce
// text artifacts.
type Artifact struct {
	data []byte
	text bool
}

// BytesArtifact wraps raw encoded bytes. The slice is not copied.
func BytesArtifact(data []byte) Artifact {
	return Artifact{data: data}
}

// TextArtifact wraps an encoded string.
func TextArtifact(s string) Artifact {
	return Artifact{data: []byte(s), text: true}
}

// IsText reports whether the artifact carries text.
func (a Artifact) IsText() bool { return a.text }

// Bytes returns the encoded content.
func (a Artifact) Bytes() []byte { return a.data }

// String returns the encoded content as a string.
func (a Artifact) String() string { return string(a.data) }

// Len returns the encoded size in bytes.
func (a Artifact) Len() int { return len(a.data) }
