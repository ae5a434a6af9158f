package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists all keys in a single JSON document on disk. It is the
// device-local backend the CLI uses, mirroring browser localStorage: small,
// synchronous, and owned by one process at a time.
//
// Writes go through a temp file plus rename so a crash mid-write never leaves
// a truncated document behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at path. The parent directory is
// created if missing; the file itself is created lazily on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrStoreUnavailable)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &FileStore{path: path}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key and flushes the document to disk.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}

	values[key] = value
	return s.flush(values)
}

// Remove deletes the value stored under key.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return s.flush(values)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return values, nil
}

func (s *FileStore) flush(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
