// Package export serializes the generated notes index.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/starford/notegen/internal/checksum"
	"github.com/starford/notegen/internal/models"
	"github.com/starford/notegen/internal/storage"
)

// EncodeJSON writes cfg as two-space indented JSON. Non-ASCII text and
// HTML-significant characters are written literally.
func EncodeJSON(w io.Writer, cfg *models.Config) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(cfg)); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// WriteJSON encodes cfg and atomically replaces path with the result.
// It returns the SHA-256 checksum of the bytes written.
func WriteJSON(store storage.Provider, path string, cfg *models.Config) (string, error) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, cfg); err != nil {
		return "", err
	}
	if err := store.Write(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return checksum.Sum(buf.Bytes()), nil
}

// normalize guarantees that empty lists encode as [] rather than null.
func normalize(cfg *models.Config) *models.Config {
	out := &models.Config{Notes: make([]models.NoteRecord, len(cfg.Notes))}
	for i, n := range cfg.Notes {
		n.Tags = nonNilSlice(n.Tags)
		n.Links = nonNilSlice(n.Links)
		out.Notes[i] = n
	}
	return out
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
