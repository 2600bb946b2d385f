package book

import (
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Context is the first element of the preprocessor input.
type Context struct {
	Root          string        `json:"root"`
	Renderer      string        `json:"renderer"`
	MDBookVersion string        `json:"mdbook_version"`
	Config        ContextConfig `json:"config"`
}

// ContextConfig mirrors the parts of book.toml this tool reads.
type ContextConfig struct {
	Book BookConfig `json:"book"`
}

// BookConfig is the [book] table. Both keys must be present; Title may be empty.
type BookConfig struct {
	Src   *string `json:"src"`
	Title *string `json:"title"`
}

// Validate validates the context.
func (c *Context) Validate() error {
	return c.Config.Book.Validate()
}

// Validate validates the book configuration.
func (c *BookConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Src, validation.Required),
		validation.Field(&c.Title, validation.NotNil),
	)
}

// SrcDir returns the document root. A relative src is resolved against Root
// when the host supplied one.
func (c *Context) SrcDir() string {
	src := ""
	if c.Config.Book.Src != nil {
		src = *c.Config.Book.Src
	}
	if c.Root == "" || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(c.Root, src)
}

// Title returns the configured book title.
func (c *Context) Title() string {
	if c.Config.Book.Title == nil {
		return ""
	}
	return *c.Config.Book.Title
}
