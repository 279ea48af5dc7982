package testutil

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/snapgo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, which is roughly how words are distributed in text.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// Vocabulary is the word list used by Text.
var Vocabulary = []string{
	"the", "of", "and", "to", "in", "is", "you", "that", "it", "he",
	"was", "for", "on", "are", "as", "with", "his", "they", "at", "be",
	"this", "have", "from", "or", "one", "had", "by", "word", "but", "not",
	"what", "all", "were", "we", "when", "your", "can", "said", "there", "use",
	"search", "index", "snapshot", "restore", "quote", "author", "great", "work", "love", "way",
}

// Text returns n words drawn from Vocabulary with a Zipfian distribution.
func (r *RNG) Text(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	words := make([]string, n)
	for i := range words {
		words[i] = Vocabulary[r.zipfLocked(len(Vocabulary), 1.0)]
	}
	return strings.Join(words, " ")
}

// Documents generates n documents for schema. Each field is left out with
// probability missingRate. Strings hold 3 to 12 words, numbers are integral
// or fractional, booleans are uniform.
func (r *RNG) Documents(n int, schema model.Schema, missingRate float64) []map[string]any {
	fields := schema.Fields()
	docs := make([]map[string]any, n)
	for i := range docs {
		doc := make(map[string]any, len(fields))
		for _, name := range fields {
			if r.Float64() < missingRate {
				continue
			}
			switch schema[name] {
			case model.FieldString:
				doc[name] = r.Text(3 + r.Intn(10))
			case model.FieldNumber:
				if r.Intn(2) == 0 {
					doc[name] = r.Intn(3000)
				} else {
					doc[name] = r.Float64() * 1000
				}
			case model.FieldBoolean:
				doc[name] = r.Intn(2) == 0
			}
		}
		docs[i] = doc
	}
	return docs
}

// SortedKeys returns the keys of m in order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
