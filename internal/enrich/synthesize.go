package enrich

import (
	"fmt"

	"github.com/starford/mdbook-hidebuild/internal/book"
	"github.com/starford/mdbook-hidebuild/internal/parser"
	"github.com/starford/mdbook-hidebuild/internal/storage"
)

// Synthesize builds one chapter per hidden path, in order. Each document is
// read from store, titled with parser.Title and prefixed with a title
// directive naming bookTitle. Every derived title is registered in l.
// The first read error aborts the whole call.
func Synthesize(store storage.Provider, hidden []string, l *Lookup, bookTitle, fallback string) ([]book.Item, error) {
	out := make([]book.Item, 0, len(hidden))
	for _, p := range hidden {
		data, err := store.Read(p)
		if err != nil {
			return nil, fmt.Errorf("enrich: synthesize %s: %w", p, err)
		}
		content := string(data)
		title := parser.Title(content, fallback)

		l.Set(p, title)
		out = append(out, book.ChapterItem(book.NewChapter("", parser.WithTitle(content, title, bookTitle), p, p)))
	}
	return out, nil
}
