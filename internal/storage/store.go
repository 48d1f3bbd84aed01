package storage

import (
	"context"
	"errors"
)

// Store is the key-value boundary used for snapshots. Values are opaque bytes.
type Store interface {
	// Load returns ErrNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
