// Package report lists documents that exist in a book's source directory but
// are missing from its SUMMARY.md.
package report

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/starford/mdbook-hidebuild/internal/enrich"
	"github.com/starford/mdbook-hidebuild/internal/parser"
	"github.com/starford/mdbook-hidebuild/internal/storage"
	"github.com/starford/mdbook-hidebuild/internal/summary"
)

// Finding is one hidden document and the title a build would give it.
type Finding struct {
	Path  string
	Title string
}

// Checker runs the hidden-document check against one source directory.
type Checker struct {
	store         storage.Provider
	pipeline      *enrich.Pipeline
	summaryPath   string
	fallbackTitle string
}

// NewChecker creates a Checker. summaryPath is relative to the store root.
func NewChecker(store storage.Provider, pipeline *enrich.Pipeline, summaryPath, fallbackTitle string) *Checker {
	return &Checker{
		store:         store,
		pipeline:      pipeline,
		summaryPath:   summaryPath,
		fallbackTitle: fallbackTitle,
	}
}

// Check parses the summary and returns every unlisted document except the
// summary file itself, in scan order.
func (c *Checker) Check() ([]Finding, error) {
	data, err := c.store.Read(c.summaryPath)
	if err != nil {
		return nil, fmt.Errorf("report: read summary: %w", err)
	}

	hidden, _, err := c.pipeline.Hidden(summary.Parse(data))
	if err != nil {
		return nil, err
	}
	hidden = lo.Without(hidden, c.summaryPath)

	out := make([]Finding, 0, len(hidden))
	for _, p := range hidden {
		doc, err := c.store.Read(p)
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		out = append(out, Finding{Path: p, Title: parser.Title(string(doc), c.fallbackTitle)})
	}
	return out, nil
}
