package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/starford/mdbook-hidebuild/internal/book"
	"github.com/starford/mdbook-hidebuild/internal/storage"
	"github.com/starford/mdbook-hidebuild/internal/testutil"
)

func TestFlatten_NestedChapters(t *testing.T) {
	items := []book.Item{
		testutil.Chapter("One", "one.md",
			testutil.Chapter("Two", "one/two.md",
				testutil.Chapter("Three", "one/two/three.md"))),
		book.OtherItem(json.RawMessage(`"Separator"`)),
		testutil.Chapter("Four", "four.md"),
	}
	l := Flatten(items)
	want := []Entry{
		{"one.md", "One"},
		{"one/two.md", "Two"},
		{"one/two/three.md", "Three"},
		{"four.md", "Four"},
	}
	got := l.Entries()
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entries[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlatten_SkipsDraftsAndNilSubItems(t *testing.T) {
	draft := &book.Chapter{Name: "Draft"}
	items := []book.Item{
		book.ChapterItem(draft),
		{Kind: book.KindChapter},
		testutil.Chapter("Real", "real.md"),
	}
	l := Flatten(items)
	if l.Len() != 1 || !l.Has("real.md") {
		t.Errorf("entries = %v, want only real.md", l.Entries())
	}
}

func TestFlatten_DuplicatePathLastWins(t *testing.T) {
	l := Flatten([]book.Item{
		testutil.Chapter("First", "dup.md"),
		testutil.Chapter("Other", "other.md"),
		testutil.Chapter("Second", "dup.md"),
	})
	if title, _ := l.Title("dup.md"); title != "Second" {
		t.Errorf("title = %q, want %q", title, "Second")
	}
	if l.Entries()[0].Path != "dup.md" {
		t.Error("duplicate should keep its first position")
	}
}

func TestFlatten_SelfReference(t *testing.T) {
	c := book.NewChapter("Loop", "", "loop.md", "loop.md")
	c.SubItems = []book.Item{book.ChapterItem(c)}
	l := Flatten([]book.Item{book.ChapterItem(c)})
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
}

func TestReconcile(t *testing.T) {
	l := NewLookup()
	l.Set("a.md", "A")
	l.Set("c.md", "C")

	got := Reconcile([]string{"c.md", "b.md", "a.md", "d.md"}, l)
	if strings.Join(got, ",") != "b.md,d.md" {
		t.Errorf("hidden = %v, want [b.md d.md]", got)
	}
}

func TestReconcile_SubsetIsEmpty(t *testing.T) {
	l := NewLookup()
	l.Set("a.md", "A")
	got := Reconcile([]string{"a.md"}, l)
	if got == nil || len(got) != 0 {
		t.Errorf("hidden = %#v, want empty non-nil", got)
	}
}

func TestSynthesize(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"notes/b.md": "# B Title\nbody",
		"plain.md":   "no heading here",
	})
	l := NewLookup()
	items, err := Synthesize(store, []string{"notes/b.md", "plain.md"}, l, "Book", "No Title")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	c := items[0].Chapter
	if c.Name != "" || *c.Path != "notes/b.md" || *c.SourcePath != "notes/b.md" {
		t.Errorf("chapter = %+v", c)
	}
	if c.Content != "{{#title B Title - Book}}\n# B Title\nbody" {
		t.Errorf("content = %q", c.Content)
	}
	if c.Number != nil || len(c.SubItems) != 0 || len(c.ParentNames) != 0 {
		t.Errorf("unexpected number/sub_items/parent_names: %+v", c)
	}
	if title, _ := l.Title("notes/b.md"); title != "B Title" {
		t.Errorf("lookup title = %q", title)
	}
	if title, _ := l.Title("plain.md"); title != "No Title" {
		t.Errorf("lookup title = %q", title)
	}
}

func TestSynthesize_ReadErrorAborts(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{"a.md": "# A"})
	_, err := Synthesize(store, []string{"a.md", "gone.md"}, NewLookup(), "Book", "No Title")
	if err == nil || !strings.Contains(err.Error(), "gone.md") {
		t.Errorf("err = %v, want read error for gone.md", err)
	}
}

func TestAllPages_CaseInsensitiveOrder(t *testing.T) {
	l := NewLookup()
	l.Set("a.md", "Zeta")
	l.Set("b.md", "alpha")

	c := AllPages(l)
	want := "# ALL PAGES\n- [alpha](b.md)\n- [Zeta](a.md)\n"
	if c.Content != want {
		t.Errorf("content = %q, want %q", c.Content, want)
	}
	if c.Name != "ALL PAGES" || *c.SourcePath != "" || *c.Path != "allpages.md" {
		t.Errorf("identity = %+v", c)
	}
}

func TestAllPages_StableForEqualTitles(t *testing.T) {
	l := NewLookup()
	l.Set("z.md", "Same")
	l.Set("a.md", "same")
	l.Set("m.md", "SAME")

	want := "# ALL PAGES\n- [Same](z.md)\n- [same](a.md)\n- [SAME](m.md)\n"
	for i := 0; i < 5; i++ {
		if got := AllPages(l).Content; got != want {
			t.Fatalf("content = %q, want %q", got, want)
		}
	}
}

func TestAllPages_Empty(t *testing.T) {
	if got := AllPages(NewLookup()).Content; got != "# ALL PAGES\n" {
		t.Errorf("content = %q", got)
	}
}

func TestLinkTarget(t *testing.T) {
	cases := map[string]string{
		"dir/README.md":    "dir/index.md",
		"a/b/README.md":    "a/b/index.md",
		"README.md":        "index.md",
		"dir/other.md":     "dir/other.md",
		"dir/README.md.md": "dir/README.md.md",
	}
	for in, want := range cases {
		if got := LinkTarget(in); got != want {
			t.Errorf("LinkTarget(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"notes/a.md": "# A\n",
		"notes/b.md": "# B Title\nbody",
	})
	b := &book.Book{Sections: []book.Item{testutil.Chapter("A", "notes/a.md")}}

	hidden, err := NewPipeline(store, testutil.DiscardLogger()).Run(b, "Book")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hidden) != 1 || hidden[0] != "notes/b.md" {
		t.Fatalf("hidden = %v", hidden)
	}
	if len(b.Sections) != 3 {
		t.Fatalf("len(sections) = %d, want 3", len(b.Sections))
	}
	if *b.Sections[0].Chapter.SourcePath != "notes/a.md" {
		t.Error("original chapter should stay first")
	}
	index := b.Sections[1].Chapter
	if index.Content != "# ALL PAGES\n- [A](notes/a.md)\n- [B Title](notes/b.md)\n" {
		t.Errorf("index content = %q", index.Content)
	}
	synth := b.Sections[2].Chapter
	if synth.Content != "{{#title B Title - Book}}\n# B Title\nbody" {
		t.Errorf("synthesized content = %q", synth.Content)
	}
}

func TestPipeline_ReadmeLinksPointAtIndex(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"README.md":       "# Home",
		"guide/README.md": "# Guide",
	})
	b := &book.Book{Sections: []book.Item{testutil.Chapter("Home", "README.md")}}

	if _, err := NewPipeline(store, testutil.DiscardLogger()).Run(b, "Book"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "# ALL PAGES\n- [Guide](guide/index.md)\n- [Home](index.md)\n"
	if got := b.Sections[1].Chapter.Content; got != want {
		t.Errorf("index content = %q, want %q", got, want)
	}
}

func TestPipeline_DotEntriesNeverHidden(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"a.md":           "# A",
		".draft.md":      "# Draft",
		".obsidian/x.md": "# X",
	})
	b := &book.Book{Sections: []book.Item{testutil.Chapter("A", "a.md")}}

	hidden, err := NewPipeline(store, testutil.DiscardLogger()).Run(b, "Book")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hidden) != 0 {
		t.Errorf("hidden = %v, want none", hidden)
	}
	if len(b.Sections) != 2 {
		t.Errorf("len(sections) = %d, want 2", len(b.Sections))
	}
}

func TestPipeline_NothingHiddenStillAddsIndex(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{"a.md": "# A"})
	b := &book.Book{Sections: []book.Item{testutil.Chapter("A", "a.md")}}

	hidden, err := NewPipeline(store, testutil.DiscardLogger()).Run(b, "Book")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hidden) != 0 {
		t.Errorf("hidden = %v, want none", hidden)
	}
	if len(b.Sections) != 2 || b.Sections[1].Chapter.Name != AllPagesName {
		t.Errorf("sections = %+v", b.Sections)
	}
}

func TestPipeline_RerunAfterMergeFindsNothing(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"a.md":     "# A",
		"sub/b.md": "# B",
		"sub/c.md": "no title",
	})
	p := NewPipeline(store, testutil.DiscardLogger())

	first := &book.Book{Sections: []book.Item{testutil.Chapter("A", "a.md")}}
	hidden, err := p.Run(first, "Book")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hidden) != 2 {
		t.Fatalf("hidden = %v, want 2", hidden)
	}

	again, _, err := p.Hidden(first.Sections)
	if err != nil {
		t.Fatalf("Hidden: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("hidden after merge = %v, want none", again)
	}
}

func TestPipeline_ReadFailureLeavesBookUntouched(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{"a.md": "# A"})
	b := &book.Book{Sections: []book.Item{}}
	p := NewPipeline(&failingReader{store}, testutil.DiscardLogger())

	if _, err := p.Run(b, "Book"); err == nil {
		t.Fatal("expected error")
	}
	if len(b.Sections) != 0 {
		t.Errorf("sections modified on failure: %+v", b.Sections)
	}
}

func TestPipeline_CustomOptions(t *testing.T) {
	_, store := testutil.TestSource(t, map[string]string{
		"a.markdown": "plain",
		"b.md":       "# ignored",
	})
	b := &book.Book{Sections: []book.Item{}}
	p := NewPipeline(store, testutil.DiscardLogger(), WithExtension(".markdown"), WithFallbackTitle("Untitled"))

	hidden, err := p.Run(b, "Book")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hidden) != 1 || hidden[0] != "a.markdown" {
		t.Fatalf("hidden = %v", hidden)
	}
	if !strings.HasPrefix(b.Sections[1].Chapter.Content, "{{#title Untitled - Book}}\n") {
		t.Errorf("content = %q", b.Sections[1].Chapter.Content)
	}
}

type failingReader struct {
	*storage.FS
}

func (f *failingReader) Read(path string) ([]byte, error) {
	return nil, fmt.Errorf("read %s: %w", path, os.ErrPermission)
}
