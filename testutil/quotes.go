package testutil

import "github.com/hupe1980/snapgo/model"

// QuoteSchema is the schema of the Quotes fixture.
func QuoteSchema() model.Schema {
	return model.Schema{
		"quote":  model.FieldString,
		"author": model.FieldString,
	}
}

// Quotes returns four well-known quotes, in insertion order.
//
// With prefix matching, "way" hits two of them ("ways", "way") and "i"
// hits all four ("I", "I've", and "is" twice).
func Quotes() []map[string]any {
	return []map[string]any{
		{"quote": "I am a great programmer", "author": "Bill Gates"},
		{"quote": "Be yourself; everyone else is already taken.", "author": "Oscar Wilde"},
		{"quote": "I have not failed. I've just found 10,000 ways that won't work.", "author": "Thomas A. Edison"},
		{"quote": "The only way to do great work is to love what you do.", "author": "Steve Jobs"},
	}
}
