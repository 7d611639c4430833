// Package store manages the uploaded story files served by the HTTP
// API.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/memoweave/memoweave/internal/loader"
)

// ErrNotFound is returned when a named file does not exist in the store.
var ErrNotFound = errors.New("file not found")

// ErrInvalidName is returned for names that escape the store directory
// or carry an unsupported extension.
var ErrInvalidName = errors.New("invalid file name")

// FileStore keeps uploaded story files in a single flat directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the store directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// clean validates a client-supplied name. Only flat names with a
// supported extension are allowed.
func (s *FileStore) clean(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || strings.ContainsAny(base, "/\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !loader.Supported(base) {
		return "", fmt.Errorf("%w: unsupported extension: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, base), nil
}

// List returns the names of stored files, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !loader.Supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Save writes an uploaded file, replacing any previous file of the
// same name.
func (s *FileStore) Save(name string, r io.Reader) error {
	path, err := s.clean(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

// Read loads the decoded text content of a stored file.
func (s *FileStore) Read(name string) (string, error) {
	path, err := s.clean(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	text, err := loader.Read(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return text, nil
}

// Delete removes a stored file.
func (s *FileStore) Delete(name string) error {
	path, err := s.clean(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
