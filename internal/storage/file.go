package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps one <table>.json file per table in a directory.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) Path(table string) string {
	return filepath.Join(f.dir, table+".json")
}

func (f *FileBackend) Load(_ context.Context, table string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(table))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTableNotFound
	}
	return data, err
}

// Save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial document.
func (f *FileBackend) Save(_ context.Context, table string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, table+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path(table))
}

func (f *FileBackend) Close() error { return nil }
