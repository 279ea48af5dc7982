package snapgo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/snapgo/codec"
)

func TestRuntime_Supports(t *testing.T) {
	tests := []struct {
		runtime Runtime
		format  codec.Format
		want    bool
	}{
		{ServerRuntime, codec.FormatJSON, true},
		{ServerRuntime, codec.FormatMsgPack, true},
		{ServerRuntime, codec.FormatCBOR, true},
		{ServerRuntime, "xml", false},
		{SandboxRuntime, codec.FormatCBOR, true},
		{RestrictedRuntime, codec.FormatMsgPack, true},
		{RestrictedRuntime, codec.FormatCBOR, false},
		{Runtime{Formats: []codec.Format{}}, codec.FormatJSON, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.runtime.Supports(tt.format), "%s/%s", tt.runtime.Name, tt.format)
	}
}

func TestRuntime_CheckError(t *testing.T) {
	err := RestrictedRuntime.check(codec.FormatCBOR)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "cbor")

	err = ServerRuntime.check("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.EqualError(t, err, "unsupported serialization format: xml")

	assert.NoError(t, ServerRuntime.check(codec.FormatJSON))
}

func TestArtifact(t *testing.T) {
	b := BytesArtifact([]byte{0x01, 0x02})
	assert.False(t, b.IsText())
	assert.Equal(t, 2, b.Len())

	s := TextArtifact("abc")
	assert.True(t, s.IsText())
	assert.Equal(t, "abc", s.String())
	assert.Equal(t, []byte("abc"), s.Bytes())
}
