package store

import (
	"errors"
	"os"
	"path/filepath"
)

// Persisted state keys. Each key is an independent document: a corrupt or
// missing value for one key never affects the others.
const (
	KeyClicks   = "clicks"
	KeyRecent   = "recent"
	KeySortMode = "sort-mode"
	KeyMetric   = "metric"
	KeyPeriod   = "period"
	KeySortBar  = "sort-bar"
)

// Backend is a small key/value store for persisted dashboard state.
type Backend interface {
	// Get returns the stored value for key, or (nil, nil) when absent.
	Get(key string) ([]byte, error)
	// Set writes the value for key synchronously.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// FileBackend implements Backend with one JSON document per key.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a FileBackend rooted at the given directory.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the state directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) keyPath(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get reads the document for key. A missing file means the key is absent.
func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.keyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Set writes the document for key, creating the state directory if needed.
func (b *FileBackend) Set(key string, value []byte) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(b.keyPath(key), value, 0644)
}

// Delete removes the document for key.
func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.keyPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DefaultStateDir returns the default state directory: ~/.config/newtab/state
func DefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "newtab", "state"), nil
}

// OpenBackend opens the appropriate backend.
// Prefers SQLite if the database file exists, otherwise falls back to files.
func OpenBackend() (Backend, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteBackend(sqlitePath)
	}

	dir, err := DefaultStateDir()
	if err != nil {
		return nil, err
	}
	return NewFileBackend(dir), nil
}
