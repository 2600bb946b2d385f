// Package summary reads an mdBook SUMMARY.md into the same item tree mdBook
// hands to preprocessors, so the table of contents can be checked without
// running a build.
package summary

import (
	"encoding/json"
	"net/url"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/starford/mdbook-hidebuild/internal/book"
)

// FileName is the conventional table-of-contents file inside the source dir.
const FileName = "SUMMARY.md"

var separator = json.RawMessage(`"Separator"`)

// Parse converts SUMMARY.md source into book items.
//
// A leading heading is the summary title and is dropped. Later headings become
// part titles and thematic breaks become separators. A link inside a
// paragraph is a prefix or suffix chapter. Links inside list items are
// numbered chapters; nested lists become sub-items. A link with an empty
// destination is a draft chapter with no path.
func Parse(src []byte) []book.Item {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var items []book.Item
	number := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if len(items) == 0 && n == doc.FirstChild() {
				continue
			}
			items = append(items, partTitle(string(node.Text(src))))
		case *ast.ThematicBreak:
			items = append(items, book.OtherItem(separator))
		case *ast.List:
			var listed []book.Item
			listed, number = listItems(node, src, nil, nil, number)
			items = append(items, listed...)
		case *ast.Paragraph:
			if c := linkChapter(node, src, nil); c != nil {
				items = append(items, book.ChapterItem(c))
			}
		}
	}
	return items
}

func partTitle(title string) book.Item {
	raw, _ := json.Marshal(map[string]string{"PartTitle": title})
	return book.OtherItem(raw)
}

// listItems converts a list into chapters numbered after prefix, continuing
// from last. It returns the items and the last number used at this level.
func listItems(list *ast.List, src []byte, parents []string, prefix []int, last int) ([]book.Item, int) {
	var out []book.Item
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var c *book.Chapter
		for blk := li.FirstChild(); blk != nil; blk = blk.NextSibling() {
			nested, ok := blk.(*ast.List)
			if !ok {
				if c == nil {
					c = linkChapter(blk, src, parents)
					if c != nil {
						last++
						c.Number = append(slices.Clone(prefix), last)
					}
				}
				continue
			}
			if c == nil {
				var flat []book.Item
				flat, last = listItems(nested, src, parents, prefix, last)
				out = append(out, flat...)
				continue
			}
			sub, _ := listItems(nested, src, append(slices.Clone(parents), c.Name), c.Number, len(subChapters(c)))
			c.SubItems = append(c.SubItems, sub...)
		}
		if c != nil {
			out = append(out, book.ChapterItem(c))
		}
	}
	return out, last
}

func subChapters(c *book.Chapter) []book.Item {
	var out []book.Item
	for _, it := range c.SubItems {
		if it.Kind == book.KindChapter {
			out = append(out, it)
		}
	}
	return out
}

// linkChapter builds a chapter from the first link inside n, or returns nil.
func linkChapter(n ast.Node, src []byte, parents []string) *book.Chapter {
	var link *ast.Link
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := node.(*ast.Link); ok && entering {
			link = l
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if link == nil {
		return nil
	}

	if parents == nil {
		parents = []string{}
	}
	c := &book.Chapter{
		Name:        strings.TrimSpace(string(link.Text(src))),
		SubItems:    []book.Item{},
		ParentNames: parents,
	}
	dest := strings.TrimSpace(string(link.Destination))
	if dest == "" {
		return c
	}
	p := normalize(dest)
	c.Path = &p
	c.SourcePath = &p
	return c
}

func normalize(dest string) string {
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	return strings.TrimPrefix(dest, "./")
}
