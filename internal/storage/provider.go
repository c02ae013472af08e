// Package storage gives the builder access to the notes directory and the
// generated output, relative to a project root.
package storage

import "github.com/starford/notegen/internal/models"

// Provider is the interface for project file operations.
type Provider interface {
	// ListNotes returns the Markdown files directly inside dir, sorted by name.
	ListNotes(dir string) ([]models.SourceFile, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path (relative to root).
	Write(path string, content []byte) error
}
