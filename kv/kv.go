package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence port shared by the cart, order, wishlist and
// identity stores. Values are opaque JSON blobs; adapters exist for memory,
// Redis and MongoDB so tests can swap in the in-memory one.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
