// Package testutil provides testing utilities for snapgo.
//
// This package is intended for use in tests and benchmarks only.
//
// # Fixtures
//
//	schema := testutil.QuoteSchema()
//	docs := testutil.Quotes()
//
// # Random Documents
//
//	rng := testutil.NewRNG(seed)
//	docs := rng.Documents(1000, schema, 0.1) // 10% of fields missing
package testutil
