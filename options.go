package snapgo

import (
	"github.com/hupe1980/snapgo/blobstore"
)

type options struct {
	runtime          Runtime
	store            blobstore.Store
	storeSet         bool
	naming           *NamingPolicy
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a Persister.
type Option func(*options)

// WithRuntime selects the capability profile. Default: ServerRuntime.
func WithRuntime(rt Runtime) Option {
	return func(o *options) {
		o.runtime = rt
	}
}

// WithStore sets where Persist writes and Restore reads.
//
// Default: a blobstore.LocalStore rooted at the working directory when the
// runtime has a filesystem, nothing otherwise.
func WithStore(store blobstore.Store) Option {
	return func(o *options) {
		o.store = store
		o.storeSet = true
	}
}

// WithNamingPolicy sets the policy used when no location is given.
// Default: DefaultNamingPolicy().
func WithNamingPolicy(p NamingPolicy) Option {
	return func(o *options) {
		o.naming = &p
	}
}

// WithLogger sets a custom logger for the persister.
//
// If nil is passed, logging is disabled (NoopLogger).
//
// Example:
//
//	logger := snapgo.NewJSONLogger(slog.LevelDebug)
//	p := snapgo.New[*lexical.Index](lexical.Engine{}, snapgo.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets a custom metrics collector for monitoring operations.
//
// If nil is passed, metrics collection is disabled (NoopMetricsCollector).
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
