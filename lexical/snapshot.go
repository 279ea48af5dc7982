package lexical

import (
	"errors"
	"fmt"

	"github.com/hupe1980/snapgo/lexical/bm25"
	"github.com/hupe1980/snapgo/model"
)

// ErrCorruptState is returned by Rebuild when a snapshot does not describe
// a consistent index.
var ErrCorruptState = errors.New("lexical: corrupt state")

// Snapshot captures the full index state. The returned blob shares nothing
// with the live index.
//
// Sections:
//
//	index   map  string field -> bm25 export
//	docs    map  id -> {field: value}
//	nodes   map  {nextId: int, properties: [string]}
//	schema       copy of the index schema
func (idx *Index) Snapshot() (*model.StateBlob, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	text := make(map[string]model.Value, len(idx.text))
	for name, ti := range idx.text {
		v, err := ti.Export()
		if err != nil {
			return nil, fmt.Errorf("lexical: export %q: %w", name, err)
		}
		text[name] = v
	}

	docs := make(map[string]model.Value, len(idx.docs))
	for id, fields := range idx.docs {
		docs[formatID(id)] = model.Map(fields)
	}

	props := idx.textFields()
	names := make([]model.Value, len(props))
	for i, p := range props {
		names[i] = model.String(p)
	}

	return &model.StateBlob{
		Index: model.Map(text),
		Docs:  model.Map(docs),
		Nodes: model.Map(map[string]model.Value{
			"nextId":     model.Int(int64(idx.nextID)),
			"properties": model.List(names...),
		}),
		Schema: idx.schema.Clone(),
	}, nil
}

// placeholderSchema only exists so Rebuild can construct an instance before
// the restored fields replace it.
var placeholderSchema = model.Schema{"_": model.FieldString}

// Rebuild constructs a new index from a snapshot. Documents are assigned
// as stored, without running them through Insert validation. It never
// returns a partially built index.
func Rebuild(state *model.StateBlob) (*Index, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	idx, err := New(placeholderSchema)
	if err != nil {
		return nil, err
	}

	schema := state.Schema.Clone()
	var fields []string
	for _, name := range schema.Fields() {
		if schema[name] == model.FieldString {
			fields = append(fields, name)
		}
	}

	nextV, _ := state.Nodes.Get("nextId")
	next, ok := nextV.AsInt64()
	if !ok || next < 1 || next > int64(^uint32(0)) {
		return nil, fmt.Errorf("%w: bad nextId", ErrCorruptState)
	}

	propsV, _ := state.Nodes.Get("properties")
	props, ok := propsV.AsList()
	if !ok || len(props) != len(fields) {
		return nil, fmt.Errorf("%w: properties do not match the schema", ErrCorruptState)
	}
	for i, p := range props {
		if p.Kind != model.KindString || p.S != fields[i] {
			return nil, fmt.Errorf("%w: properties do not match the schema", ErrCorruptState)
		}
	}

	texts, ok := state.Index.AsMap()
	if !ok || len(texts) != len(fields) {
		return nil, fmt.Errorf("%w: index does not cover the string fields", ErrCorruptState)
	}
	text := make(map[string]*bm25.MemoryIndex, len(fields))
	for _, name := range fields {
		tv, ok := texts[name]
		if !ok {
			return nil, fmt.Errorf("%w: no index for field %q", ErrCorruptState, name)
		}
		ti, err := bm25.Import(tv)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrCorruptState, name, err)
		}
		text[name] = ti
	}

	raw, ok := state.Docs.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: docs is %s, not map", ErrCorruptState, state.Docs.Kind)
	}
	docs := make(map[uint32]map[string]model.Value, len(raw))
	for key, dv := range raw {
		id, ok := parseID(key)
		if !ok || int64(id) >= next {
			return nil, fmt.Errorf("%w: bad document id %q", ErrCorruptState, key)
		}
		doc, ok := dv.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: document %q is %s, not map", ErrCorruptState, key, dv.Kind)
		}
		docs[id] = model.Map(doc).M
	}

	for name, ti := range text {
		if ti.Len() > len(docs) {
			return nil, fmt.Errorf("%w: field %q indexes %d documents, store has %d", ErrCorruptState, name, ti.Len(), len(docs))
		}
	}

	idx.mu.Lock()
	idx.schema, idx.docs, idx.text, idx.nextID = schema, docs, text, uint32(next)
	idx.mu.Unlock()
	return idx, nil
}

// Engine adapts Index to the snapshot engine contract used by
// snapgo.Persister.
type Engine struct{}

// Snapshot calls idx.Snapshot.
func (Engine) Snapshot(idx *Index) (*model.StateBlob, error) {
	return idx.Snapshot()
}

// RebuildFrom calls Rebuild.
func (Engine) RebuildFrom(state *model.StateBlob) (*Index, error) {
	return Rebuild(state)
}
