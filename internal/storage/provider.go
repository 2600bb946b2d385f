// Package storage defines the book source file-system abstraction.
package storage

// Provider is the interface for book source file operations.
type Provider interface {
	// List returns every file under the root whose name ends in ext,
	// relative to the root with "/" separators, in walk order.
	List(ext string) ([]string, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
}
