// Package model defines the data exchanged between a search database and the
// snapshot codecs.
//
// # Values
//
// Value is a small tagged value (null, bool, int, float, string, bytes, list,
// map). The persistence layer treats the index, document and node sections of
// a snapshot as opaque Values so every codec can serialize them without
// knowing how the search engine lays out its internals.
//
// # Snapshots
//
//   - StateBlob: index, docs, nodes and schema of one database at one point in time
//   - Schema: field name to FieldType declaration, validated on later inserts
//
// Build values with the constructors:
//
//	v := model.Map(map[string]model.Value{
//	    "count": model.Int(4),
//	    "terms": model.List(model.String("way"), model.String("work")),
//	})
package model
