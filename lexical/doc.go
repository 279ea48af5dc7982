// Package lexical is a small in-memory full-text search database.
//
// An Index holds documents of a flat schema (string, number and boolean
// fields). Each string field is tokenized into its own BM25 index from the
// bm25 subpackage. The index can be captured as a model.StateBlob and rebuilt
// from one, which is what the snapgo persister works with:
//
//	idx, _ := lexical.New(model.Schema{"quote": model.FieldString, "author": model.FieldString})
//	idx.Insert(map[string]any{"quote": "Be yourself", "author": "Oscar Wilde"})
//
//	p := snapgo.New[*lexical.Index](lexical.Engine{})
//	path, _ := p.Persist(ctx, idx, codec.FormatMsgPack, "")
//	restored, _ := p.Restore(ctx, codec.FormatMsgPack, path)
package lexical
