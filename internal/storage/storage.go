package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been set or was removed.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by Set when a size-limited backend is full.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Store is a flat key-value port. Values are opaque bytes; callers own the encoding.
// Remove on a missing key is not an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Closer is implemented by backends holding connections or file handles.
type Closer interface {
	Close() error
}
