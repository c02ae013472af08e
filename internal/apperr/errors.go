// Package apperr holds sentinel errors shared across notegen packages.
package apperr

import "errors"

var (
	// ErrDirectoryNotFound means the notes directory is missing or is not a directory.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrFileRead means a note could not be read or is not valid UTF-8.
	ErrFileRead = errors.New("file read failed")
)
