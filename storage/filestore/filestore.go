// Package filestore implements storage.Repo with one file per key in a
// local directory.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cunservicios/portal/storage"
	"github.com/martinlindhe/base36"
	"github.com/natefinch/atomic"
	"golang.org/x/crypto/blake2s"
)

var _ storage.Repo = (*Store)(nil)

// A Store keeps each value in its own file. File names are derived from a
// hash of the key so arbitrary keys (such as "portal.receipts.v1:muni-x")
// are safe on every filesystem.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get loads the value stored under key.
func (s *Store) Get(key string) (string, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", storage.ErrNotFound
	} else if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return string(raw), nil
}

// Set atomically replaces the value stored under key.
func (s *Store) Set(key, value string) error {
	if err := atomic.WriteFile(s.path(key), strings.NewReader(value)); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return os.Chmod(s.path(key), 0o600)
}

// Delete removes the file for key.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

func fileName(key string) string {
	h := blake2s.Sum256([]byte(key))
	return strings.ToLower(base36.EncodeBytes(h[:])) + ".val"
}
