// Package parser derives page titles from Markdown source and builds the
// mdBook title directive placed at the top of generated pages.
package parser

import (
	"fmt"
	"strings"
)

// DefaultFallbackTitle is used when a document has no heading line.
const DefaultFallbackTitle = "No Title"

// Title returns the text of the first line that starts with "#", with the
// surrounding "#" runs and whitespace removed. Later headings are ignored.
// If no line qualifies, fallback is returned.
func Title(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.Trim(line, "#"))
		}
	}
	return fallback
}

// TitleDirective returns the {{#title}} line mdBook uses as the HTML page title.
func TitleDirective(title, bookTitle string) string {
	return fmt.Sprintf("{{#title %s - %s}}\n", title, bookTitle)
}

// WithTitle prepends the title directive to content, leaving content unchanged.
func WithTitle(content, title, bookTitle string) string {
	return TitleDirective(title, bookTitle) + content
}
