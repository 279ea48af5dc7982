package bm25

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

const (
	k1 = 1.2
	b  = 0.75
)

// postingList holds the documents containing a term and the term frequency
// per document.
type postingList struct {
	docs *roaring.Bitmap
	tf   map[uint32]uint32
}

// MemoryIndex is a simple in-memory BM25 index over one text field.
type MemoryIndex struct {
	mu          sync.RWMutex
	inverted    map[string]*postingList
	docLengths  map[uint32]uint32
	totalLength int64
	docCount    int
}

// New creates a new MemoryIndex.
func New() *MemoryIndex {
	return &MemoryIndex{
		inverted:   make(map[string]*postingList),
		docLengths: make(map[uint32]uint32),
	}
}

// Add indexes text under doc. Re-adding a document replaces it.
func (idx *MemoryIndex) Add(doc uint32, text string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.docLengths[doc]; ok {
		idx.deleteLocked(doc)
	}

	tokens := Tokenize(text)
	idx.docLengths[doc] = uint32(len(tokens))
	idx.totalLength += int64(len(tokens))
	idx.docCount++

	for _, t := range tokens {
		pl, ok := idx.inverted[t]
		if !ok {
			pl = &postingList{docs: roaring.New(), tf: make(map[uint32]uint32)}
			idx.inverted[t] = pl
		}
		pl.docs.Add(doc)
		pl.tf[doc]++
	}
}

// Delete removes doc from the index. Unknown documents are ignored.
func (idx *MemoryIndex) Delete(doc uint32) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.deleteLocked(doc)
}

func (idx *MemoryIndex) deleteLocked(doc uint32) {
	length, ok := idx.docLengths[doc]
	if !ok {
		return
	}

	for t, pl := range idx.inverted {
		if !pl.docs.Contains(doc) {
			continue
		}
		pl.docs.Remove(doc)
		delete(pl.tf, doc)
		if pl.docs.IsEmpty() {
			delete(idx.inverted, t)
		}
	}

	delete(idx.docLengths, doc)
	idx.totalLength -= int64(length)
	idx.docCount--
}

// Len returns the number of indexed documents.
func (idx *MemoryIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.docCount
}

// Terms returns the indexed terms that start with prefix, sorted.
func (idx *MemoryIndex) Terms(prefix string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var terms []string
	for t := range idx.inverted {
		if strings.HasPrefix(t, prefix) {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	return terms
}

// Score adds the BM25 contribution of each term to scores, keyed by doc.
func (idx *MemoryIndex) Score(terms []string, scores map[uint32]float64) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.docCount == 0 {
		return
	}
	avgDL := float64(idx.totalLength) / float64(idx.docCount)

	for _, t := range terms {
		pl, ok := idx.inverted[t]
		if !ok {
			continue
		}
		idf := idx.computeIDF(int(pl.docs.GetCardinality()))

		it := pl.docs.Iterator()
		for it.HasNext() {
			doc := it.Next()
			tf := float64(pl.tf[doc])
			docLen := float64(idx.docLengths[doc])

			// BM25 formula
			num := tf * (k1 + 1)
			denom := tf + k1*(1-b+b*(docLen/avgDL))
			scores[doc] += idf * (num / denom)
		}
	}
}

// Search tokenizes text and scores documents matching any exact term.
func (idx *MemoryIndex) Search(text string) map[uint32]float64 {
	scores := make(map[uint32]float64)
	idx.Score(Tokenize(text), scores)
	return scores
}

func (idx *MemoryIndex) computeIDF(df int) float64 {
	// IDF = log(1 + (N - n + 0.5) / (n + 0.5))
	N := float64(idx.docCount)
	n := float64(df)
	return math.Log(1 + (N-n+0.5)/(n+0.5))
}

func (pl *postingList) validate(term string) error {
	if pl.docs.GetCardinality() != uint64(len(pl.tf)) {
		return fmt.Errorf("bm25: term %q: %d docs but %d frequencies", term, pl.docs.GetCardinality(), len(pl.tf))
	}
	return nil
}
