// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/notegen/internal/apperr"
	"github.com/starford/notegen/internal/builder"
	"github.com/starford/notegen/internal/export"
	"github.com/starford/notegen/internal/index"
	"github.com/starford/notegen/internal/models"
	"github.com/starford/notegen/internal/storage"
)

// Run scans the notes directory once and writes the generated index.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		workDir: ".",
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Logs go to stderr; stdout only carries the summary line.
	logger := slog.New(slog.NewJSONHandler(app.stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("work_dir", app.workDir),
		slog.String("notes_dir", cfg.Notes.Dir),
		slog.String("output_path", cfg.Output.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(app.workDir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	notes, err := builder.New(store, logger).Build(ctx, cfg.Notes.Dir)
	if err != nil {
		if errors.Is(err, apperr.ErrDirectoryNotFound) {
			return fmt.Errorf("directory %q does not exist: create it and add Markdown files: %w", cfg.Notes.Dir, err)
		}
		return fmt.Errorf("build notes: %w", err)
	}

	// The mirror goes first so that a failure leaves config.json untouched.
	if cfg.SQLite.Enabled() {
		db, err := openIndex(store.Root(), cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := mirror(db, notes); err != nil {
			return err
		}
	}

	sum, err := export.WriteJSON(store, cfg.Output.Path, notes)
	if err != nil {
		return err
	}

	logger.Info("Notes index written",
		slog.Int("notes", len(notes.Notes)),
		slog.String("output_path", cfg.Output.Path),
		slog.String("sha256", sum))

	fmt.Fprintf(app.stdout, "Generated %s with %d notes.\n", filepath.Base(cfg.Output.Path), len(notes.Notes))
	return nil
}

// openIndex opens the SQLite mirror, resolving relative paths against root.
func openIndex(root, dbPath string) (*index.DB, error) {
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(root, dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	db, err := index.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	return db, nil
}

// mirror rewrites the SQLite copy of the index.
func mirror(idx index.NoteIndex, notes *models.Config) error {
	if err := idx.Replace(notes.Notes); err != nil {
		return fmt.Errorf("mirror index: %w", err)
	}
	return nil
}
