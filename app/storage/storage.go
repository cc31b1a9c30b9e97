// Package storage provides the blob store the application persists into.
// Implementations handle opaque key-value blobs addressed by path-like
// strings; the application layers blog posts and backup archives on top.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no blob exists at the key.
var ErrNotFound = errors.New("key not found")

// BlobStore is an opaque key-value blob store keyed by path-like strings.
type BlobStore interface {
	// List returns every key under prefix, recursively.
	List(ctx context.Context, prefix string) ([]string, error)

	// Read returns the blob at key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data at key, replacing any existing blob.
	Write(ctx context.Context, key string, data []byte) error

	// Remove deletes the blob at key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
