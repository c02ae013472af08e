package index

import "github.com/starford/notegen/internal/models"

// NoteIndex defines the interface for the SQLite mirror.
// Consumers should depend on this interface rather than the concrete *DB type.
type NoteIndex interface {
	Replace(notes []models.NoteRecord) error
	Notes() ([]models.NoteRecord, error)
	Backlinks(target string) ([]string, error)
	Close() error
}

// Verify *DB satisfies NoteIndex at compile time.
var _ NoteIndex = (*DB)(nil)
