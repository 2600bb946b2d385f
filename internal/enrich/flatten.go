package enrich

import "github.com/starford/mdbook-hidebuild/internal/book"

// Flatten walks items depth-first and records every chapter's source path
// and name. Non-chapter items and draft chapters (no source path) are skipped.
// Parents are recorded before their sub-items; on a duplicate path the later
// name wins.
func Flatten(items []book.Item) *Lookup {
	l := NewLookup()
	visited := make(map[*book.Chapter]struct{})
	flattenInto(l, items, visited)
	return l
}

func flattenInto(l *Lookup, items []book.Item, visited map[*book.Chapter]struct{}) {
	for _, it := range items {
		if it.Kind != book.KindChapter || it.Chapter == nil {
			continue
		}
		c := it.Chapter
		if _, seen := visited[c]; seen {
			continue
		}
		visited[c] = struct{}{}

		if c.SourcePath != nil {
			l.Set(*c.SourcePath, c.Name)
		}
		if c.SubItems != nil {
			flattenInto(l, c.SubItems, visited)
		}
	}
}
