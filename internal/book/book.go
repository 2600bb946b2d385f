// Package book defines the mdBook preprocessor wire types: the render context
// and the book whose table of contents is being enriched.
package book

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags the variant held by an Item.
type Kind int

const (
	// KindOther covers separators, part titles and any shape this tool does not interpret.
	KindOther Kind = iota
	// KindChapter is a chapter carrying (usually) a document.
	KindChapter
)

// Chapter is a single table-of-contents entry.
// Path and SourcePath are nil for draft chapters.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []int    `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

// NewChapter returns an unnumbered chapter with no children or ancestors.
func NewChapter(name, content, sourcePath, path string) *Chapter {
	return &Chapter{
		Name:        name,
		Content:     content,
		SubItems:    []Item{},
		Path:        &path,
		SourcePath:  &sourcePath,
		ParentNames: []string{},
	}
}

// Item is one element of Book.Sections or Chapter.SubItems.
// Non-chapter items keep their raw JSON so they round-trip unchanged.
type Item struct {
	Kind    Kind
	Chapter *Chapter

	raw json.RawMessage
}

// ChapterItem wraps c as a chapter item.
func ChapterItem(c *Chapter) Item {
	return Item{Kind: KindChapter, Chapter: c}
}

// OtherItem returns a non-chapter item that encodes as raw.
func OtherItem(raw json.RawMessage) Item {
	return Item{Kind: KindOther, raw: raw}
}

type chapterEnvelope struct {
	Chapter *Chapter `json:"Chapter"`
}

// MarshalJSON implements json.Marshaler.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Kind == KindChapter && it.Chapter != nil {
		return json.Marshal(chapterEnvelope{Chapter: it.Chapter})
	}
	if len(it.raw) == 0 {
		return []byte("null"), nil
	}
	return it.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler. Anything that is not a
// well-formed {"Chapter": {...}} object becomes KindOther.
func (it *Item) UnmarshalJSON(data []byte) error {
	raw := append(json.RawMessage(nil), bytes.TrimSpace(data)...)

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err == nil {
		if body, ok := env["Chapter"]; ok {
			var c Chapter
			if err := json.Unmarshal(body, &c); err == nil && !isNull(body) {
				*it = Item{Kind: KindChapter, Chapter: &c}
				return nil
			}
		}
	}

	*it = Item{Kind: KindOther, raw: raw}
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Book is the mdBook book object. Keys other than "sections" are kept as-is.
type Book struct {
	Sections []Item

	extra map[string]json.RawMessage
}

// MarshalJSON implements json.Marshaler.
func (b Book) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.extra)+1)
	for k, v := range b.extra {
		out[k] = v
	}
	sections := b.Sections
	if sections == nil {
		sections = []Item{}
	}
	out["sections"] = sections
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("book: decode book object: %w", err)
	}
	raw, ok := fields["sections"]
	if !ok {
		return fmt.Errorf("book: missing \"sections\"")
	}
	var sections []Item
	if err := json.Unmarshal(raw, &sections); err != nil {
		return fmt.Errorf("book: decode sections: %w", err)
	}
	delete(fields, "sections")

	b.Sections = sections
	b.extra = fields
	return nil
}
