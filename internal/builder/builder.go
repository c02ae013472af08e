// Package builder turns a directory of Markdown notes into the ordered list
// of records written to the generated index.
package builder

import (
	"context"
	"log/slog"
	"strings"

	"github.com/starford/notegen/internal/models"
	"github.com/starford/notegen/internal/parser"
	"github.com/starford/notegen/internal/storage"
)

// Builder coordinates storage reads and front-matter parsing.
type Builder struct {
	store  storage.Provider
	logger *slog.Logger
}

// New creates a Builder reading through store.
func New(store storage.Provider, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: store, logger: logger}
}

// Build scans dir and returns one record per Markdown file, in filename order.
// A missing directory or an unreadable file aborts the whole build.
func (b *Builder) Build(ctx context.Context, dir string) (*models.Config, error) {
	files, err := b.store.ListNotes(dir)
	if err != nil {
		return nil, err
	}

	notes := make([]models.NoteRecord, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := b.store.Read(f.Path)
		if err != nil {
			return nil, err
		}
		rec := b.buildRecord(dir, f.Name, string(data))
		b.logger.Debug("builder: parsed", slog.String("file", rec.File), slog.String("id", rec.ID))
		notes = append(notes, rec)
	}

	return &models.Config{Notes: notes}, nil
}

func (b *Builder) buildRecord(dir, name, content string) models.NoteRecord {
	res := parser.Parse(content)
	if res.Malformed {
		b.logger.Debug("builder: malformed front-matter ignored", slog.String("file", name))
	}
	return Record(dir, name, res.Frontmatter)
}

// Record derives a note record from its front-matter, falling back to
// filename-based defaults for every field that is absent or of the wrong shape.
func Record(dir, name string, meta parser.Metadata) models.NoteRecord {
	id, ok := meta.String("id")
	if !ok {
		id = Stem(name)
	}
	title, ok := meta.String("title")
	if !ok {
		title = id
	}
	tags, ok := meta.StringList("tags")
	if !ok {
		tags = []string{}
	}
	links, ok := meta.StringList("links")
	if !ok {
		links = []string{}
	}
	return models.NoteRecord{
		ID:    id,
		Title: title,
		Tags:  tags,
		File:  FilePath(dir, name),
		Links: links,
	}
}

// Stem strips the final extension from a filename. Leading dots do not start
// an extension, so ".md" stays ".md".
func Stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.TrimLeft(name[:i], ".") == "" {
		return name
	}
	return name[:i]
}

// FilePath joins dir and name and normalizes separators to forward slashes.
// A separator is only inserted when dir does not already end with one.
func FilePath(dir, name string) string {
	var p string
	switch {
	case dir == "":
		p = name
	case strings.HasSuffix(dir, "/"), strings.HasSuffix(dir, `\`):
		p = dir + name
	default:
		p = dir + "/" + name
	}
	return strings.ReplaceAll(p, `\`, "/")
}
