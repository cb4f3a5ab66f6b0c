// Package storage provides the small filesystem surface the launcher needs:
// existence checks, whole-file reads, atomic writes and deletion. Both the
// administration file and the legacy sibling files go through it.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// File wraps a single filesystem path.
type File struct {
	path string
}

// NewFile creates a helper for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the wrapped path.
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the path exists and is a regular file or directory.
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Read returns the full file content.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return data, nil
}

// Write replaces the file content atomically using a temporary file in the
// same directory followed by a rename.
func (f *File) Write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Delete removes the file. Deleting a missing file is not an error.
func (f *File) Delete() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", f.path, err)
	}
	return nil
}
