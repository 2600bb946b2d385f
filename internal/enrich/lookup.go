// Package enrich reconciles a book's table of contents with the documents on
// disk: it adds chapters for unlisted documents and an alphabetical index page.
package enrich

// Entry is one path/title pair of a Lookup.
type Entry struct {
	Path  string
	Title string
}

// Lookup maps a chapter source path to its display title, remembering
// insertion order. It is built by Flatten, extended by Synthesize and read by
// AllPages, in that order.
type Lookup struct {
	order  []string
	titles map[string]string
}

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{titles: make(map[string]string)}
}

// Set records title for path. An existing path keeps its position.
func (l *Lookup) Set(path, title string) {
	if _, ok := l.titles[path]; !ok {
		l.order = append(l.order, path)
	}
	l.titles[path] = title
}

// Title returns the title recorded for path.
func (l *Lookup) Title(path string) (string, bool) {
	t, ok := l.titles[path]
	return t, ok
}

// Has reports whether path is listed.
func (l *Lookup) Has(path string) bool {
	_, ok := l.titles[path]
	return ok
}

// Len returns the number of paths.
func (l *Lookup) Len() int { return len(l.order) }

// Entries returns the pairs in insertion order.
func (l *Lookup) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, p := range l.order {
		out = append(out, Entry{Path: p, Title: l.titles[p]})
	}
	return out
}
