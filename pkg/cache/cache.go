// Package cache provides the byte-oriented caches the layout pipeline stores
// computed layouts and rendered artifacts in.
//
// Implementations:
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] from content hashes of the layout document
// and the options that affect the output, so identical requests share
// entries across processes.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
type Cache interface {
	// Backend names the storage behind the cache: "file", "redis" or "none".
	Backend() string

	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default expiries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
