// Package repository owns the in-memory collections behind the console
// and their flat-file persistence. Each store loads everything at
// startup, seeds documented defaults when its file is missing, empty or
// fully corrupt, and rewrites the whole file after every mutation.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LoadReport describes the outcome of a store load so callers can do
// their own user-facing reporting.
type LoadReport struct {
	// SeededDefaults is true when the backing file was missing, empty
	// or contained no valid line and the store fell back to defaults.
	SeededDefaults bool
	// InvalidLines counts lines that were skipped as unparseable.
	InvalidLines int
}

// FileStore reads and writes one newline-delimited record file. It is
// the only piece of the repositories that touches the filesystem.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store for the given path on the given filesystem.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the backing file's path.
func (s *FileStore) Path() string {
	return s.path
}

// ReadLines returns the file's non-empty lines. A missing file is not
// an error; it reads as no content.
func (s *FileStore) ReadLines() ([]string, error) {
	content, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// WriteLines overwrites the file with the given records, creating the
// parent directory if needed.
func (s *FileStore) WriteLines(lines []string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
