package storage

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a backend when a write would push the total
// stored size past its configured quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is the raw durable key/value layer underneath Store.
// Load reports ok=false for a key that was never written. SaveAll writes
// every entry or none of them.
type Backend interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	SaveAll(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
