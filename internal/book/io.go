package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/starford/mdbook-hidebuild/internal/apperr"
)

// ReadInput decodes the preprocessor input: a JSON array holding exactly a
// context and a book.
func ReadInput(r io.Reader) (*Context, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("book: decode input: %w: %w", apperr.ErrMalformedInput, err)
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("book: input has %d elements, want 2: %w", len(pair), apperr.ErrMalformedInput)
	}

	var ctx Context
	if err := json.Unmarshal(pair[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("book: decode context: %w: %w", apperr.ErrMalformedInput, err)
	}
	if err := ctx.Validate(); err != nil {
		return nil, nil, fmt.Errorf("book: context: %w: %w", apperr.ErrConfig, err)
	}

	var b Book
	if err := json.Unmarshal(pair[1], &b); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperr.ErrMalformedInput, err)
	}
	return &ctx, &b, nil
}

// WriteBook writes b as a single line of JSON.
func WriteBook(w io.Writer, b *Book) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("book: encode: %w", err)
	}
	return nil
}

// MarshalIndent renders b for human inspection.
func MarshalIndent(b *Book) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("book: encode: %w", err)
	}
	return buf.Bytes(), nil
}
