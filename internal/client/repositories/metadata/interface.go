// Package metadata persists small key/value pairs in the client's local
// sqlite database. The session store keeps the bearer token and the
// serialized user record here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the stored value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
