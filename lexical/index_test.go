package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapgo/model"
	"github.com/hupe1980/snapgo/testutil"
)

func newQuoteIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(testutil.QuoteSchema())
	require.NoError(t, err)
	for _, doc := range testutil.Quotes() {
		_, err := idx.Insert(doc)
		require.NoError(t, err)
	}
	return idx
}

func hitIDs(res Result) []string {
	ids := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.ID
	}
	return ids
}

func TestNew_InvalidSchema(t *testing.T) {
	_, err := New(model.Schema{})
	assert.ErrorIs(t, err, model.ErrInvalidSchema)

	_, err = New(model.Schema{"a": "text"})
	assert.ErrorIs(t, err, model.ErrInvalidSchema)
}

func TestInsertAndGet(t *testing.T) {
	idx, err := New(model.Schema{"title": model.FieldString, "year": model.FieldNumber, "draft": model.FieldBoolean})
	require.NoError(t, err)

	id, err := idx.Insert(map[string]any{"title": "Hello", "year": 2020, "draft": false})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	doc, ok := idx.Get(id)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"title": "Hello", "year": 2020.0, "draft": false}, doc)

	id2, err := idx.Insert(map[string]any{"title": "Partial"})
	require.NoError(t, err)
	assert.Equal(t, "2", id2)
	assert.Equal(t, 2, idx.Count())

	_, ok = idx.Get("99")
	assert.False(t, ok)
	_, ok = idx.Get("abc")
	assert.False(t, ok)
}

func TestInsert_Invalid(t *testing.T) {
	idx := newQuoteIndex(t)

	cases := map[string]map[string]any{
		"UnknownField": {"quote": "x", "year": 1},
		"WrongType":    {"quote": 42},
		"Unsupported":  {"quote": struct{}{}},
		"InvalidUTF8":  {"quote": "way \xff"},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := idx.Insert(doc)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
	assert.Equal(t, 4, idx.Count())
}

func TestSearch_Quotes(t *testing.T) {
	idx := newQuoteIndex(t)

	res, err := idx.Search(SearchParams{Term: "way"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.ElementsMatch(t, []string{"3", "4"}, hitIDs(res))

	res, err = idx.Search(SearchParams{Term: "way", Exact: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, hitIDs(res))

	res, err = idx.Search(SearchParams{Term: "i"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count)

	res, err = idx.Search(SearchParams{Term: "i", Exact: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "3"}, hitIDs(res))

	res, err = idx.Search(SearchParams{Term: "oscar", Properties: []string{"author"}})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "Oscar Wilde", res.Hits[0].Document["author"])

	res, err = idx.Search(SearchParams{Term: "oscar", Properties: []string{"quote"}})
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestSearch_OrderingAndPaging(t *testing.T) {
	idx := newQuoteIndex(t)

	res, err := idx.Search(SearchParams{Term: "great work"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	// Quote 4 contains both terms.
	assert.Equal(t, "4", res.Hits[0].ID)
	for i := 1; i < len(res.Hits); i++ {
		assert.GreaterOrEqual(t, res.Hits[i-1].Score, res.Hits[i].Score)
	}

	all, err := idx.Search(SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, []string{"1", "2", "3", "4"}, hitIDs(all))

	page, err := idx.Search(SearchParams{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Count)
	assert.Equal(t, []string{"2", "3"}, hitIDs(page))

	_, err = idx.Search(SearchParams{Term: "x", Properties: []string{"missing"}})
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestDelete(t *testing.T) {
	idx := newQuoteIndex(t)

	require.NoError(t, idx.Delete("4"))
	assert.ErrorIs(t, idx.Delete("4"), ErrDocumentNotFound)
	assert.ErrorIs(t, idx.Delete("x"), ErrDocumentNotFound)

	res, err := idx.Search(SearchParams{Term: "way"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, hitIDs(res))

	// Ids are not reused.
	id, err := idx.Insert(map[string]any{"quote": "new"})
	require.NoError(t, err)
	assert.Equal(t, "5", id)
}
