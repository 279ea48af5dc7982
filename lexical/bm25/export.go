package bm25

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/snapgo/model"
)

// ErrCorrupt is returned by Import when an exported index is inconsistent.
var ErrCorrupt = errors.New("bm25: corrupt export")

// Export captures the index as a value tree:
//
//	terms        map  term -> {docs: roaring bitmap bytes, tf: [int]}
//	lengths      map  {docs: roaring bitmap bytes, tf: [int]} of token counts
//	totalLength  int
//	docCount     int
//
// Frequency lists follow the ascending doc order of the bitmap next to them.
func (idx *MemoryIndex) Export() (model.Value, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	terms := make(map[string]model.Value, len(idx.inverted))
	for t, pl := range idx.inverted {
		v, err := exportPostings(pl.docs, pl.tf)
		if err != nil {
			return model.Value{}, fmt.Errorf("bm25: term %q: %w", t, err)
		}
		terms[t] = v
	}

	docs := roaring.New()
	for doc := range idx.docLengths {
		docs.Add(doc)
	}
	lengths, err := exportPostings(docs, idx.docLengths)
	if err != nil {
		return model.Value{}, fmt.Errorf("bm25: lengths: %w", err)
	}

	return model.Map(map[string]model.Value{
		"terms":       model.Map(terms),
		"lengths":     lengths,
		"totalLength": model.Int(idx.totalLength),
		"docCount":    model.Int(int64(idx.docCount)),
	}), nil
}

func exportPostings(docs *roaring.Bitmap, counts map[uint32]uint32) (model.Value, error) {
	raw, err := docs.ToBytes()
	if err != nil {
		return model.Value{}, err
	}
	ids := docs.ToArray()
	tf := make([]model.Value, len(ids))
	for i, doc := range ids {
		tf[i] = model.Int(int64(counts[doc]))
	}
	return model.Value{Kind: model.KindMap, M: map[string]model.Value{
		"docs": model.Bytes(raw),
		"tf":   {Kind: model.KindList, A: tf},
	}}, nil
}

func importPostings(v model.Value) (*roaring.Bitmap, map[uint32]uint32, error) {
	rawV, _ := v.Get("docs")
	raw, ok := rawV.AsBytes()
	if !ok {
		return nil, nil, fmt.Errorf("%w: docs is %s, not bytes", ErrCorrupt, rawV.Kind)
	}
	tfV, _ := v.Get("tf")
	tf, ok := tfV.AsList()
	if !ok {
		return nil, nil, fmt.Errorf("%w: tf is %s, not list", ErrCorrupt, tfV.Kind)
	}

	docs := roaring.New()
	if err := docs.UnmarshalBinary(raw); err != nil {
		return nil, nil, fmt.Errorf("%w: bitmap: %w", ErrCorrupt, err)
	}
	ids := docs.ToArray()
	if len(ids) != len(tf) {
		return nil, nil, fmt.Errorf("%w: %d docs but %d frequencies", ErrCorrupt, len(ids), len(tf))
	}

	counts := make(map[uint32]uint32, len(ids))
	for i, doc := range ids {
		n, ok := tf[i].AsInt64()
		if !ok || n < 0 || n > int64(^uint32(0)) {
			return nil, nil, fmt.Errorf("%w: bad frequency for doc %d", ErrCorrupt, doc)
		}
		counts[doc] = uint32(n)
	}
	return docs, counts, nil
}

// Import rebuilds an index from a value produced by Export.
func Import(v model.Value) (*MemoryIndex, error) {
	termsV, _ := v.Get("terms")
	terms, ok := termsV.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: terms is %s, not map", ErrCorrupt, termsV.Kind)
	}
	lengthsV, _ := v.Get("lengths")
	totalV, _ := v.Get("totalLength")
	total, ok := totalV.AsInt64()
	if !ok {
		return nil, fmt.Errorf("%w: totalLength is %s, not int", ErrCorrupt, totalV.Kind)
	}
	countV, _ := v.Get("docCount")
	count, ok := countV.AsInt64()
	if !ok {
		return nil, fmt.Errorf("%w: docCount is %s, not int", ErrCorrupt, countV.Kind)
	}

	idx := New()

	docs, lengths, err := importPostings(lengthsV)
	if err != nil {
		return nil, fmt.Errorf("lengths: %w", err)
	}
	var sum int64
	for _, n := range lengths {
		sum += int64(n)
	}
	if int64(docs.GetCardinality()) != count || sum != total {
		return nil, fmt.Errorf("%w: statistics do not match document lengths", ErrCorrupt)
	}
	idx.docLengths = lengths
	idx.totalLength = total
	idx.docCount = int(count)

	for t, tv := range terms {
		pdocs, tf, err := importPostings(tv)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", t, err)
		}
		if !roaring.AndNot(pdocs, docs).IsEmpty() {
			return nil, fmt.Errorf("%w: term %q references unknown documents", ErrCorrupt, t)
		}
		pl := &postingList{docs: pdocs, tf: tf}
		if err := pl.validate(t); err != nil {
			return nil, err
		}
		idx.inverted[t] = pl
	}
	return idx, nil
}
