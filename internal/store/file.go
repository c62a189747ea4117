package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
)

const fileExt = ".json"

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile creates the directory when missing and returns a file-backed store.
func NewFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory holding the payload files.
func (f *File) Dir() string { return f.dir }

// Path returns the backing file for key.
func (f *File) Path(key string) string {
	return Location(KindFile, f.dir, key)
}

func (f *File) checkKey(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid file key %q", key)
	}
	return nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.checkKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		events.Store.Get(string(KindFile), key, false)
		return nil, ErrNotFound
	}
	if err != nil {
		events.Store.Error(string(KindFile), "get", err)
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	events.Store.Get(string(KindFile), key, true)
	return data, nil
}

// Put writes through a temporary file and renames it over the target so
// readers never observe a partial payload.
func (f *File) Put(ctx context.Context, key string, value []byte) error {
	if err := f.checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		events.Store.Error(string(KindFile), "put", err)
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		cleanup()
		events.Store.Error(string(KindFile), "put", err)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	events.Store.Put(string(KindFile), key, len(value))
	return nil
}

func (f *File) Close() error { return nil }
