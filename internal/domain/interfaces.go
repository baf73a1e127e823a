package domain

import (
	"context"
	"time"
)

// Cache defines the interface for the persistent key/value store
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL (0 keeps it forever)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// FolderFunc is invoked for a directory before the walker descends into it
type FolderFunc func(basename, path string, depth int) error

// FileFunc is invoked for each document file
type FileFunc func(basename, path string, depth int) error

// Walker defines a depth-first pre-order directory traversal.
// The root itself is not reported; its direct entries have depth 1.
type Walker interface {
	Walk(ctx context.Context, root string, onFolder FolderFunc, onFile FileFunc) error
}

// MetadataExtractor reads a document's title and summary
type MetadataExtractor interface {
	Extract(path string) (*DocumentMeta, error)
}
