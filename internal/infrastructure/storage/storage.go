// Package storage keeps the binaries attached to videos on the local disk or in S3.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when no object is stored under a key
var ErrKeyNotFound = errors.New("storage key not found")

// Object is a stored binary with its descriptive metadata
type Object struct {
	Name        string
	ContentType string
	Checksum    string
	Content     []byte
}

// BlobStorage is a flat key/value store for binaries
type BlobStorage interface {
	Store(ctx context.Context, key string, obj Object) error
	// Get returns ErrKeyNotFound when nothing is stored under key
	Get(ctx context.Context, key string) (Object, error)
	// List returns every key starting with prefix
	List(ctx context.Context, prefix string) ([]string, error)
	DeleteAll(ctx context.Context, keys []string) error
}
