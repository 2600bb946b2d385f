package enrich

import (
	"fmt"
	"log/slog"

	"github.com/starford/mdbook-hidebuild/internal/book"
	"github.com/starford/mdbook-hidebuild/internal/parser"
	"github.com/starford/mdbook-hidebuild/internal/storage"
)

// DefaultExtension selects the documents the pipeline considers.
const DefaultExtension = ".md"

// Pipeline runs the enrichment steps against one book source directory.
type Pipeline struct {
	store         storage.Provider
	logger        *slog.Logger
	extension     string
	fallbackTitle string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithExtension sets the document file extension.
func WithExtension(ext string) PipelineOption {
	return func(p *Pipeline) { p.extension = ext }
}

// WithFallbackTitle sets the title used for documents without a heading.
func WithFallbackTitle(title string) PipelineOption {
	return func(p *Pipeline) { p.fallbackTitle = title }
}

// NewPipeline creates a pipeline reading documents from store.
func NewPipeline(store storage.Provider, logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store:         store,
		logger:        logger,
		extension:     DefaultExtension,
		fallbackTitle: parser.DefaultFallbackTitle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Hidden returns the documents under the store that items do not list,
// along with the lookup built from items.
func (p *Pipeline) Hidden(items []book.Item) ([]string, *Lookup, error) {
	lookup := Flatten(items)
	inventory, err := p.store.List(p.extension)
	if err != nil {
		return nil, nil, fmt.Errorf("enrich: scan documents: %w", err)
	}
	return Reconcile(inventory, lookup), lookup, nil
}

// Run appends the index page followed by one chapter per hidden document to
// b.Sections and returns the hidden paths. b is left untouched on error.
func (p *Pipeline) Run(b *book.Book, bookTitle string) ([]string, error) {
	hidden, lookup, err := p.Hidden(b.Sections)
	if err != nil {
		return nil, err
	}
	p.logger.Info("enrich: reconciled table of contents",
		slog.Int("listed", lookup.Len()),
		slog.Int("hidden", len(hidden)))

	chapters, err := Synthesize(p.store, hidden, lookup, bookTitle, p.fallbackTitle)
	if err != nil {
		return nil, err
	}
	for _, it := range chapters {
		p.logger.Debug("enrich: synthesized chapter", slog.String("path", *it.Chapter.SourcePath))
	}

	// The index must see every synthesized title, so it is built last.
	index := AllPages(lookup)

	b.Sections = append(b.Sections, book.ChapterItem(index))
	b.Sections = append(b.Sections, chapters...)
	return hidden, nil
}
