package snapgo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapgo/codec"
)

func TestNamingPolicy(t *testing.T) {
	env := map[string]string{}
	p := NamingPolicy{
		BaseName: "base",
		EnvVar:   "DB_NAME",
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}

	tests := []struct {
		name     string
		override *string
		format   codec.Format
		want     string
	}{
		{"Unset", nil, codec.FormatMsgPack, "base.msp"},
		{"Empty", ptr(""), codec.FormatJSON, "base.json"},
		{"Override", ptr("nightly"), codec.FormatCBOR, "nightly.cbor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clear(env)
			if tt.override != nil {
				env["DB_NAME"] = *tt.override
			}
			got, err := p.Name(tt.format, ServerRuntime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamingPolicy_Errors(t *testing.T) {
	p := NewNamingPolicy("base")

	_, err := p.Name("yaml", ServerRuntime)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = p.Name(codec.FormatCBOR, RestrictedRuntime)
	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "restricted", ufe.Runtime)
}

func TestNamingPolicy_NoEnvVar(t *testing.T) {
	t.Setenv(DefaultEnvVar, "ignored")
	p := NamingPolicy{BaseName: "fixed"}
	got, err := p.Name(codec.FormatJSON, ServerRuntime)
	require.NoError(t, err)
	assert.Equal(t, "fixed.json", got)
}

func TestDefaultNamingPolicy(t *testing.T) {
	a := DefaultNamingPolicy()
	b := DefaultNamingPolicy()
	assert.Equal(t, a.BaseName, b.BaseName)
	assert.True(t, strings.HasPrefix(a.BaseName, "snapgo_dump_"))
	assert.Equal(t, DefaultEnvVar, a.EnvVar)

	t.Setenv(DefaultEnvVar, "from-env")
	got, err := a.Name(codec.FormatMsgPack, ServerRuntime)
	require.NoError(t, err)
	assert.Equal(t, "from-env.msp", got)
}

func TestWithNamingPolicy(t *testing.T) {
	p := newPersister(WithNamingPolicy(NamingPolicy{BaseName: "custom"}))
	got, err := p.DefaultLocation(codec.FormatCBOR)
	require.NoError(t, err)
	assert.Equal(t, "custom.cbor", got)
}

func ptr[T any](v T) *T { return &v }
