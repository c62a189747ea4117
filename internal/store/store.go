// Package store provides the key-value boundary the tree engine loads from
// and saves to. Implementations hold opaque byte payloads under string keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store reads and writes payloads under a fixed key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Kind names a storage backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ParseKind validates a backend name. Empty input selects the file backend.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case "", KindFile:
		return KindFile, nil
	case KindSQLite:
		return KindSQLite, nil
	case KindMemory:
		return KindMemory, nil
	default:
		return "", fmt.Errorf("unknown store kind %q (want file, sqlite or memory)", value)
	}
}

// Open constructs the backend named by kind rooted at path.
func Open(kind Kind, path string) (Store, error) {
	events.Store.Open(string(kind), path)
	switch kind {
	case KindFile, "":
		return NewFile(path)
	case KindSQLite:
		return OpenSQLite(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// Location returns the file a backend of kind rooted at path keeps key in,
// or "" when the backend has nothing on disk.
func Location(kind Kind, path, key string) string {
	switch kind {
	case KindFile, "":
		return filepath.Join(path, key+fileExt)
	case KindSQLite:
		return path
	default:
		return ""
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: empty key")
	}
	return nil
}
