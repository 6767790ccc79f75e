package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend writes one <key>.json file per slot.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir when needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("vault dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key Key) string {
	return filepath.Join(f.dir, string(key)+".json")
}

func (f *FileBackend) Get(_ context.Context, key Key) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

// Put writes to a temp file in the same directory and renames it over the slot.
func (f *FileBackend) Put(_ context.Context, key Key, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, string(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename slot %s: %w", key, err)
	}
	return nil
}

func (f *FileBackend) Delete(_ context.Context, key Key) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}
