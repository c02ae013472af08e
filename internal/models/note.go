// Package models defines the records written to the generated notes index.
package models

// NoteRecord is one entry per Markdown file processed.
// Field order matches the JSON layout consumed by the web application.
type NoteRecord struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	File  string   `json:"file"`
	Links []string `json:"links"`
}

// Config is the generated artifact: every note, ordered by filename.
type Config struct {
	Notes []NoteRecord `json:"notes"`
}

// SourceFile is a Markdown file selected for processing.
type SourceFile struct {
	// Name is the bare filename, e.g. "a.md".
	Name string
	// Path is the location relative to the storage root, in host form.
	Path string
}
