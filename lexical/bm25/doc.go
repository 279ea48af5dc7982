// Package bm25 provides a BM25-based lexical search index.
//
// BM25 (Best Matching 25) is a ranking function used for keyword search.
// Postings are kept as roaring bitmaps with a term frequency per document,
// which also makes the exported form compact.
//
// # Usage
//
//	idx := bm25.New()
//	idx.Add(1, "the quick brown fox")
//	scores := idx.Search("fox")
//
// # Parameters
//
// Uses standard BM25 parameters: k1=1.2, b=0.75
//
// # Thread Safety
//
// The index is safe for concurrent reads and writes.
package bm25
