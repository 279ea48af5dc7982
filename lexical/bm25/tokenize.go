package bm25

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into terms. A term is a run of
// letters, digits and inner apostrophes, so "I've" stays one term.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})

	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
