// Package blob stores entry photos in an S3-compatible object store.
//
// Keys are caller-chosen (see imagex.EntryImageKey). Downloads go through
// presigned GET URLs so the presentation layer can fetch images directly.
// Every failure is wrapped as common.ErrStorage; there are no retries.
package blob

import "context"

// Store is the blob storage boundary used by the entry service.
type Store interface {
	// Put uploads data under key and returns the stored key.
	Put(ctx context.Context, key string, data []byte) (string, error)
	// Remove deletes the object under key.
	Remove(ctx context.Context, key string) error
	// URLFor returns a time-limited download URL for key.
	URLFor(ctx context.Context, key string) (string, error)
}
