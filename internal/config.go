package internal

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default paths, relative to the working directory.
const (
	DefaultNotesDir   = "notes"
	DefaultOutputPath = "config.json"
)

var (
	jsonFileRe = regexp.MustCompile(`(?i)\.json$`)

	errOutsideWorkDir = validation.NewError("validation_path_inside_workdir",
		"must be a relative path inside the working directory")
)

// insideWorkDir rejects absolute paths and paths that climb out of the
// working directory, which storage refuses to touch.
func insideWorkDir(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") || strings.HasPrefix(s, `\`) {
		return errOutsideWorkDir
	}
	cleaned := filepath.ToSlash(filepath.Clean(s))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errOutsideWorkDir
	}
	return nil
}

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Notes  NotesConfig       `yaml:"notes"`
	Output OutputConfig      `yaml:"output"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.SQLite.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// NotesConfig holds the directory scanned for Markdown notes.
type NotesConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required, validation.By(insideWorkDir)),
	)
}

// OutputConfig holds the location of the generated JSON index.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required, validation.By(insideWorkDir),
			validation.Match(jsonFileRe).Error("must be a .json file")),
	)
}

// SQLiteConfig holds the optional SQLite mirror configuration.
// An empty Path disables the mirror. Unlike the notes and output paths it
// may be absolute, since it is opened directly rather than through storage.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Length(0, 4096)),
	)
}

// Enabled reports whether records should also be mirrored into SQLite.
func (c *SQLiteConfig) Enabled() bool {
	return c.Path != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Notes: NotesConfig{
			Dir: DefaultNotesDir,
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
	}
}
