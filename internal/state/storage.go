package state

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Storage persists opaque state blobs by key.
type Storage interface {
	// Read returns the blobs for the keys that exist. Missing keys are
	// absent from the result.
	Read(ctx context.Context, keys ...string) (map[string][]byte, error)
	Write(ctx context.Context, changes map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}

// AferoStorage keeps state blobs as files in an afero filesystem. Backed by
// afero.NewMemMapFs it is a process-local memory store.
type AferoStorage struct {
	fs   afero.Fs
	root string
	mu   sync.RWMutex
}

// Compile-time interface compliance check
var _ Storage = (*AferoStorage)(nil)

// NewAferoStorage creates a storage rooted at root inside fs.
func NewAferoStorage(fs afero.Fs, root string) *AferoStorage {
	return &AferoStorage{fs: fs, root: root}
}

// NewMemoryStorage returns an AferoStorage over an in-memory filesystem.
func NewMemoryStorage() *AferoStorage {
	return NewAferoStorage(afero.NewMemMapFs(), "state")
}

// path maps a key to a single file name so keys containing slashes do not
// create nested directories.
func (s *AferoStorage) path(key string) string {
	return filepath.Join(s.root, url.PathEscape(key)+".json")
}

// Read implements Storage.
func (s *AferoStorage) Read(ctx context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := s.fs.OpenFile(s.path(key), os.O_RDONLY, 0)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out[key] = data
	}
	return out, nil
}

// Write implements Storage.
func (s *AferoStorage) Write(ctx context.Context, changes map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return err
	}
	for key, data := range changes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := afero.WriteFile(s.fs, s.path(key), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// Delete implements Storage. Deleting a missing key is not an error.
func (s *AferoStorage) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if err := s.fs.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
