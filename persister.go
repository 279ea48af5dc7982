package snapgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/snapgo/blobstore"
	"github.com/hupe1980/snapgo/codec"
	"github.com/hupe1980/snapgo/model"
)

// Engine is the contract a database must offer to be persisted.
type Engine[DB any] interface {
	// Snapshot captures the full mutable state of db without modifying it.
	Snapshot(db DB) (*model.StateBlob, error)
	// RebuildFrom constructs a new database whose state is exactly state.
	// Implementations assign the fields directly instead of replaying inserts.
	RebuildFrom(state *model.StateBlob) (DB, error)
}

// Persister snapshots databases to encoded artifacts and restores them.
//
// A Persister holds no per-call state and is safe for concurrent use.
// Concurrent Persist and Restore calls on the same location are not
// coordinated; the last writer wins.
type Persister[DB any] struct {
	engine  Engine[DB]
	runtime Runtime
	store   blobstore.Store
	naming  NamingPolicy
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Persister for engine.
func New[DB any](engine Engine[DB], optFns ...Option) *Persister[DB] {
	o := options{
		runtime:          ServerRuntime,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if !o.storeSet && o.runtime.Filesystem {
		o.store = blobstore.NewLocalStore(".")
	}
	naming := DefaultNamingPolicy()
	if o.naming != nil {
		naming = *o.naming
	}

	return &Persister[DB]{
		engine:  engine,
		runtime: o.runtime,
		store:   o.store,
		naming:  naming,
		logger:  o.logger.WithRuntime(o.runtime),
		metrics: o.metricsCollector,
	}
}

// Runtime returns the capability profile the persister was built with.
func (p *Persister[DB]) Runtime() Runtime {
	return p.runtime
}

// DefaultLocation returns the location Persist and Restore use for format f
// when none is given.
func (p *Persister[DB]) DefaultLocation(f codec.Format) (string, error) {
	return p.naming.Name(resolve(f), p.runtime)
}

// Persist snapshots db, encodes it as format f and writes it to location.
// An empty location is replaced by the naming policy's choice, and the
// location actually used is returned. An empty format means
// codec.DefaultFormat.
//
// The format is checked before anything else, so an unsupported format
// never reaches the store. Store errors are returned unchanged.
func (p *Persister[DB]) Persist(ctx context.Context, db DB, f codec.Format, location string) (_ string, err error) {
	start := time.Now()
	f = resolve(f)
	size := 0
	defer func() {
		p.metrics.RecordPersist(f, size, time.Since(start), err)
		p.logger.LogPersist(ctx, f, location, size, err)
	}()

	if err := p.runtime.check(f); err != nil {
		return "", err
	}
	if err := p.checkStorage(); err != nil {
		return "", err
	}
	if location == "" {
		if location, err = p.naming.Name(f, p.runtime); err != nil {
			return "", err
		}
	}

	a, err := p.encode(db, f)
	if err != nil {
		return "", err
	}
	if err := p.store.Put(ctx, location, a.Bytes()); err != nil {
		return "", err
	}
	size = a.Len()
	return location, nil
}

// Restore reads the artifact at location, decodes it as format f and
// rebuilds a database from it. An empty location is resolved by the naming
// policy. On failure the zero DB is returned.
//
// A missing location yields an error matching ErrNotFound. Input that does
// not decode yields ErrMalformedInput. Other store errors are returned
// unchanged.
func (p *Persister[DB]) Restore(ctx context.Context, f codec.Format, location string) (_ DB, err error) {
	start := time.Now()
	f = resolve(f)
	size := 0
	defer func() {
		p.metrics.RecordRestore(f, size, time.Since(start), err)
		p.logger.LogRestore(ctx, f, location, size, err)
	}()

	var zero DB
	if err := p.runtime.check(f); err != nil {
		return zero, err
	}
	if err := p.checkStorage(); err != nil {
		return zero, err
	}
	if location == "" {
		if location, err = p.naming.Name(f, p.runtime); err != nil {
			return zero, err
		}
	}

	data, err := p.store.Get(ctx, location)
	if err != nil {
		return zero, err
	}

	db, err := p.decode(p.artifactOf(f, data), f)
	if err != nil {
		return zero, err
	}
	size = len(data)
	return db, nil
}

// Export snapshots db and encodes it as format f without touching storage.
func (p *Persister[DB]) Export(db DB, f codec.Format) (_ Artifact, err error) {
	start := time.Now()
	f = resolve(f)
	size := 0
	defer func() {
		p.metrics.RecordExport(f, size, time.Since(start), err)
		p.logger.LogExport(context.Background(), f, size, err)
	}()

	if err := p.runtime.check(f); err != nil {
		return Artifact{}, err
	}
	a, err := p.encode(db, f)
	if err != nil {
		return Artifact{}, err
	}
	size = a.Len()
	return a, nil
}

// Import decodes an artifact produced by Export and rebuilds a database
// from it without touching storage.
func (p *Persister[DB]) Import(a Artifact, f codec.Format) (_ DB, err error) {
	start := time.Now()
	f = resolve(f)
	size := 0
	defer func() {
		p.metrics.RecordImport(f, size, time.Since(start), err)
		p.logger.LogImport(context.Background(), f, size, err)
	}()

	var zero DB
	if err := p.runtime.check(f); err != nil {
		return zero, err
	}
	db, err := p.decode(a, f)
	if err != nil {
		return zero, err
	}
	size = a.Len()
	return db, nil
}

func resolve(f codec.Format) codec.Format {
	if f == "" {
		return codec.DefaultFormat
	}
	return f
}

func (p *Persister[DB]) checkStorage() error {
	if !p.runtime.Filesystem || p.store == nil {
		return ErrNoStorage
	}
	return nil
}

func (p *Persister[DB]) safeString(f codec.Format) bool {
	return codec.NeedsSafeString(f, p.runtime.NativeByteBuffers)
}

// artifactOf wraps bytes read from storage the way encode would have
// produced them.
func (p *Persister[DB]) artifactOf(f codec.Format, data []byte) Artifact {
	return Artifact{data: data, text: f.Textual() || p.safeString(f)}
}

func (p *Persister[DB]) encode(db DB, f codec.Format) (Artifact, error) {
	c, err := codec.ByFormat(f)
	if err != nil {
		return Artifact{}, err
	}

	state, err := p.engine.Snapshot(db)
	if err != nil {
		return Artifact{}, fmt.Errorf("snapgo: snapshot: %w", err)
	}
	data, err := c.Encode(state)
	if err != nil {
		return Artifact{}, fmt.Errorf("snapgo: encode %s: %w", f, err)
	}

	switch {
	case p.safeString(f):
		return TextArtifact(codec.ToSafeString(data)), nil
	case f.Textual():
		return Artifact{data: data, text: true}, nil
	default:
		return BytesArtifact(data), nil
	}
}

func (p *Persister[DB]) decode(a Artifact, f codec.Format) (DB, error) {
	var zero DB

	c, err := codec.ByFormat(f)
	if err != nil {
		return zero, err
	}

	// A binary format carried as text is a safe string, whichever runtime
	// produced it.
	data := a.Bytes()
	if !f.Textual() && a.IsText() {
		if data, err = codec.FromSafeString(a.String()); err != nil {
			return zero, err
		}
	}

	state, err := c.Decode(data)
	if err != nil {
		return zero, err
	}
	db, err := p.engine.RebuildFrom(state)
	if err != nil {
		return zero, fmt.Errorf("%w: rebuild: %w", ErrMalformedInput, err)
	}
	return db, nil
}
