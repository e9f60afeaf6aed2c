// Package cache provides pluggable byte caches used to memoize parsed
// design listings. Layout listings from a full-chip export can run to
// millions of rows; keying the parsed result by content hash lets repeated
// reports skip the parse entirely.
//
// Three backends are provided: FileCache (per-user cache directory),
// RedisCache (shared, e.g. across a CAD farm mounting the same listings)
// and NullCache (caching disabled).
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry TTLs.
type Cache interface {
	// Get returns the cached data for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// LibraryKey returns the cache key for a parsed listing. The key covers the
// raw file contents and the ingestion policy, since the same bytes parse to
// different libraries under skip and strict handling.
func LibraryKey(contents []byte, policy string) string {
	return "library:" + policy + ":" + Hash(contents)
}
