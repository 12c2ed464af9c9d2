// Package metadata is a small key/value store in the local database. The
// auth session caches the signed-in identity here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrNotFound for unknown keys.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
