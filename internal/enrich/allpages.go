package enrich

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/starford/mdbook-hidebuild/internal/book"
)

// Index page identity and the landing-file rewrite applied to its links.
const (
	AllPagesName = "ALL PAGES"
	AllPagesPath = "allpages.md"
	LandingFile  = "README.md"
	IndexFile    = "index.md"
)

// AllPages renders the index page listing every lookup entry, sorted by
// case-insensitive title. Equal titles keep lookup order.
func AllPages(l *Lookup) *book.Chapter {
	entries := l.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})

	var sb strings.Builder
	sb.WriteString("# " + AllPagesName + "\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- [%s](%s)\n", e.Title, LinkTarget(e.Path))
	}
	return book.NewChapter(AllPagesName, sb.String(), "", AllPagesPath)
}

// LinkTarget maps a source path to the link used on the index page:
// "dir/README.md" becomes "dir/index.md", anything else is unchanged.
func LinkTarget(p string) string {
	if path.Base(p) != LandingFile {
		return p
	}
	return path.Join(path.Dir(p), IndexFile)
}
