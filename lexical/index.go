package lexical

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/hupe1980/snapgo/lexical/bm25"
	"github.com/hupe1980/snapgo/model"
)

// DefaultLimit is the number of hits returned when SearchParams.Limit is zero.
const DefaultLimit = 10

var (
	// ErrInvalidDocument is returned when a document does not match the schema.
	ErrInvalidDocument = errors.New("lexical: invalid document")
	// ErrDocumentNotFound is returned when an id is not in the index.
	ErrDocumentNotFound = errors.New("lexical: document not found")
	// ErrUnknownProperty is returned when a search names a non-string field.
	ErrUnknownProperty = errors.New("lexical: unknown property")
)

// Index is an in-memory full-text index over documents of a fixed schema.
// Every string field gets its own BM25 index.
type Index struct {
	mu     sync.RWMutex
	schema model.Schema
	docs   map[uint32]map[string]model.Value
	text   map[string]*bm25.MemoryIndex
	nextID uint32
}

// New creates an empty index for schema.
func New(schema model.Schema) (*Index, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	idx := &Index{
		schema: schema.Clone(),
		docs:   make(map[uint32]map[string]model.Value),
		text:   make(map[string]*bm25.MemoryIndex),
		nextID: 1,
	}
	for _, field := range idx.textFields() {
		idx.text[field] = bm25.New()
	}
	return idx, nil
}

// Schema returns a copy of the index schema.
func (idx *Index) Schema() model.Schema {
	return idx.schema.Clone()
}

func (idx *Index) textFields() []string {
	var fields []string
	for _, name := range idx.schema.Fields() {
		if idx.schema[name] == model.FieldString {
			fields = append(fields, name)
		}
	}
	return fields
}

// Insert validates doc against the schema, indexes it and returns its id.
// Fields may be omitted. Numbers are stored as float64.
func (idx *Index) Insert(doc map[string]any) (string, error) {
	fields := make(map[string]model.Value, len(doc))
	for name, raw := range doc {
		v, err := model.FromAny(raw)
		if err != nil {
			return "", fmt.Errorf("%w: field %q: %w", ErrInvalidDocument, name, err)
		}
		v, err = idx.checkField(name, v)
		if err != nil {
			return "", err
		}
		fields[name] = v
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.nextID == math.MaxUint32 {
		return "", errors.New("lexical: document id space exhausted")
	}
	id := idx.nextID
	idx.nextID++
	idx.insertLocked(id, fields)
	return formatID(id), nil
}

func (idx *Index) insertLocked(id uint32, fields map[string]model.Value) {
	idx.docs[id] = fields
	for name, ti := range idx.text {
		if v, ok := fields[name]; ok {
			ti.Add(id, v.S)
		}
	}
}

func (idx *Index) checkField(name string, v model.Value) (model.Value, error) {
	typ, ok := idx.schema[name]
	if !ok {
		return v, fmt.Errorf("%w: field %q is not in the schema", ErrInvalidDocument, name)
	}
	switch {
	case typ == model.FieldString && v.Kind == model.KindString:
		if !utf8.ValidString(v.S) {
			return v, fmt.Errorf("%w: field %q is not valid UTF-8", ErrInvalidDocument, name)
		}
		return v, nil
	case typ == model.FieldBoolean && v.Kind == model.KindBool:
		return v, nil
	case typ == model.FieldNumber && v.Kind == model.KindFloat:
		return v, nil
	case typ == model.FieldNumber && v.Kind == model.KindInt:
		return model.Float(float64(v.I64)), nil
	}
	return v, fmt.Errorf("%w: field %q is %s, want %s", ErrInvalidDocument, name, v.Kind, typ)
}

// Delete removes the document with the given id.
func (idx *Index) Delete(id string) error {
	n, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.docs[n]; !ok {
		return fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
	}
	delete(idx.docs, n)
	for _, ti := range idx.text {
		ti.Delete(n)
	}
	return nil
}

// Get returns the stored document for id.
func (idx *Index) Get(id string) (map[string]any, bool) {
	n, ok := parseID(id)
	if !ok {
		return nil, false
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	fields, ok := idx.docs[n]
	if !ok {
		return nil, false
	}
	return documentToAny(fields), true
}

// Count returns the number of stored documents.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// SearchParams describes a full-text query.
type SearchParams struct {
	// Term is tokenized like indexed text. An empty term matches every document.
	Term string
	// Properties restricts the search to these string fields. Empty means all.
	Properties []string
	// Exact disables prefix expansion of query terms.
	Exact bool
	// Limit caps the number of hits. Zero means DefaultLimit.
	Limit int
	// Offset skips the first hits.
	Offset int
}

// Hit is one matching document.
type Hit struct {
	ID       string
	Score    float64
	Document map[string]any
}

// Result holds the total number of matches and the requested page of hits.
type Result struct {
	Count int
	Hits  []Hit
}

// Search runs a BM25 query. Hits are ordered by descending score, then by id.
// Unless Exact is set, each query term also matches indexed terms it is a
// prefix of, so "way" finds "ways".
func (idx *Index) Search(params SearchParams) (Result, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	props := params.Properties
	if len(props) == 0 {
		props = idx.textFields()
	}
	for _, p := range props {
		if _, ok := idx.text[p]; !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownProperty, p)
		}
	}

	scores := make(map[uint32]float64)
	tokens := bm25.Tokenize(params.Term)
	if len(tokens) == 0 {
		for id := range idx.docs {
			scores[id] = 0
		}
	}

	sorted := append([]string(nil), props...)
	sort.Strings(sorted)
	for _, p := range sorted {
		ti := idx.text[p]
		for _, tok := range tokens {
			terms := []string{tok}
			if !params.Exact {
				terms = ti.Terms(tok)
			}
			ti.Score(terms, scores)
		}
	}

	ids := make([]uint32, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	res := Result{Count: len(ids)}
	for i := max(params.Offset, 0); i < len(ids) && len(res.Hits) < limit; i++ {
		id := ids[i]
		res.Hits = append(res.Hits, Hit{
			ID:       formatID(id),
			Score:    scores[id],
			Document: documentToAny(idx.docs[id]),
		})
	}
	return res, nil
}

func documentToAny(fields map[string]model.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v.ToAny()
	}
	return out
}

func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint32(n), true
}
