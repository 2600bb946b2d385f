// Package testutil provides shared test helpers for setting up book sources.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/mdbook-hidebuild/internal/book"
	"github.com/starford/mdbook-hidebuild/internal/storage"
)

// TestSource creates a temporary source directory holding files (relative
// slash paths to content) and returns it with a storage.FS rooted there.
func TestSource(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Chapter returns a chapter item for path with the given sub-items.
func Chapter(name, path string, sub ...book.Item) book.Item {
	c := book.NewChapter(name, "", path, path)
	if sub != nil {
		c.SubItems = sub
	}
	return book.ChapterItem(c)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
