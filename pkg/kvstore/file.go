package kvstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
)

// File is a Store keeping one file per key under a state directory. It is the
// durable mirror for a single machine: state survives across invocations the
// way browser local storage survives page reloads.
type File struct {
	dir string
}

// NewFile returns a file-backed store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	return &File{dir: dir}, nil
}

// path maps a key to a filename. Keys are hex-encoded so arbitrary key names
// can never escape the state directory or collide with path separators.
func (f *File) path(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key))+".kv")
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return data, nil
}

// Set writes the value to a temp file and renames it into place, so readers
// never observe a partially written value.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	dst := f.path(key)
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for key %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for key %q: %w", key, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing key %q: %w", key, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}
