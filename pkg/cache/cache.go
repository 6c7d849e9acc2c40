// Package cache stores rendered layouts and artifacts keyed by content.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI.
//   - [RedisCache]: a shared cache for the HTTP server.
//   - [NullCache]: never stores anything (--no-cache).
//
// # Keys
//
// A [Keyer] builds keys from the inputs that determine a value: the dataset
// content hash, the zoom stack and the layout geometry for layouts, and the
// layout hash plus render options for artifacts. Identical inputs always
// produce the same key, so stale entries are never served after a dataset
// edit. [ScopedKeyer] adds a prefix for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
