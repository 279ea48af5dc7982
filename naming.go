package snapgo

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hupe1980/snapgo/codec"
)

// DefaultEnvVar overrides the base name of default snapshot locations.
const DefaultEnvVar = "SNAPGO_DB_NAME"

// NamingPolicy derives a location when the caller does not supply one.
type NamingPolicy struct {
	// BaseName is used when the environment override is unset or empty.
	BaseName string
	// EnvVar names the override variable. Empty disables the override.
	EnvVar string
	// LookupEnv reads the override. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewNamingPolicy returns a policy with the given base name that honors
// DefaultEnvVar.
func NewNamingPolicy(base string) NamingPolicy {
	return NamingPolicy{BaseName: base, EnvVar: DefaultEnvVar}
}

var defaultNaming = sync.OnceValue(func() NamingPolicy {
	return NewNamingPolicy(fmt.Sprintf("snapgo_dump_%d", time.Now().UnixMilli()))
})

// DefaultNamingPolicy returns the process-wide policy. Its base name is
// derived from the time of the first call and stays fixed afterwards.
func DefaultNamingPolicy() NamingPolicy {
	return defaultNaming()
}

// Name returns "<base>.<extension>" for format f. The environment override
// is read on every call.
func (p NamingPolicy) Name(f codec.Format, rt Runtime) (string, error) {
	if err := rt.check(f); err != nil {
		return "", err
	}
	return p.base() + "." + f.Extension(), nil
}

func (p NamingPolicy) base() string {
	if p.EnvVar != "" {
		lookup := p.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if v, ok := lookup(p.EnvVar); ok && v != "" {
			return v
		}
	}
	return p.BaseName
}
