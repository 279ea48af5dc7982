// Package snapgo persists an in-memory search index to storage and restores
// it, in one of three serialization formats.
//
// # Quick Start
//
//	p := snapgo.New[*lexical.Index](lexical.Engine{})
//
//	loc, _ := p.Persist(ctx, idx, codec.FormatMsgPack, "")  // default name
//	restored, _ := p.Restore(ctx, codec.FormatMsgPack, loc)
//
// In-memory, without storage:
//
//	a, _ := p.Export(idx, codec.FormatJSON)
//	restored, _ := p.Import(a, codec.FormatJSON)
//
// # Formats
//
//   - json: text, human readable, extension .json
//   - msgpack: compact binary and the default, extension .msp
//   - cbor: general-purpose binary container, extension .cbor
//
// An artifact is only readable with the format that produced it. Restoring
// with another format fails with ErrMalformedInput.
//
// # Runtimes
//
// A Runtime describes what the environment can do. ServerRuntime supports
// everything. SandboxRuntime has no storage and carries compact-binary
// artifacts as hex strings. RestrictedRuntime lacks the cbor encoder.
// Formats disabled on a runtime fail with *UnsupportedFormatError before
// any storage is touched.
//
// # Naming
//
// When no location is given, the NamingPolicy picks "<base>.<extension>".
// The base defaults to "snapgo_dump_<millis>", fixed per process, and the
// SNAPGO_DB_NAME environment variable overrides it.
//
// # Storage
//
// Persisted artifacts go through a blobstore.Store: the local file system
// by default, or bbolt, MinIO and S3 via the blobstore subpackages.
//
// # Observability
//
// WithLogger attaches a slog-based Logger and WithMetricsCollector a
// MetricsCollector. The metric package provides a Prometheus collector.
package snapgo
