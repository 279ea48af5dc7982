package snapgo_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/snapgo"
	"github.com/hupe1980/snapgo/blobstore"
	"github.com/hupe1980/snapgo/codec"
	"github.com/hupe1980/snapgo/lexical"
	"github.com/hupe1980/snapgo/model"
)

func quoteIndex() *lexical.Index {
	idx, err := lexical.New(model.Schema{"quote": model.FieldString, "author": model.FieldString})
	if err != nil {
		log.Fatal(err)
	}
	for _, doc := range []map[string]any{
		{"quote": "I am a great programmer", "author": "Bill Gates"},
		{"quote": "Be yourself; everyone else is already taken.", "author": "Oscar Wilde"},
		{"quote": "I have not failed. I've just found 10,000 ways that won't work.", "author": "Thomas A. Edison"},
		{"quote": "The only way to do great work is to love what you do.", "author": "Steve Jobs"},
	} {
		if _, err := idx.Insert(doc); err != nil {
			log.Fatal(err)
		}
	}
	return idx
}

// ExamplePersister_Persist writes a snapshot to disk and reads it back.
func ExamplePersister_Persist() {
	dir, err := os.MkdirTemp("", "snapgo-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	p := snapgo.New[*lexical.Index](lexical.Engine{}, snapgo.WithStore(blobstore.NewLocalStore(dir)))

	loc, err := p.Persist(ctx, quoteIndex(), codec.FormatMsgPack, "quotes.msp")
	if err != nil {
		log.Fatal(err)
	}

	restored, err := p.Restore(ctx, codec.FormatMsgPack, loc)
	if err != nil {
		log.Fatal(err)
	}

	res, err := restored.Search(lexical.SearchParams{Term: "way"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Count)
	// Output: 2
}

// ExamplePersister_Export round-trips a snapshot without storage.
func ExamplePersister_Export() {
	p := snapgo.New[*lexical.Index](lexical.Engine{}, snapgo.WithRuntime(snapgo.SandboxRuntime))

	a, err := p.Export(quoteIndex(), codec.FormatMsgPack)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(a.IsText(), a.String()[:8])

	restored, err := p.Import(a, codec.FormatMsgPack)
	if err != nil {
		log.Fatal(err)
	}
	res, err := restored.Search(lexical.SearchParams{Term: "great work", Limit: 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Hits[0].Document["author"])
	// Output:
	// true 53474d50
	// Steve Jobs
}
