// Package cache stores computed layouts and rendered artifacts between runs.
//
// # Overview
//
// Laying out a large diagram with the force-directed algorithm, or rendering
// it through Graphviz, is the slow part of a CLI invocation. The [Cache]
// interface lets the pipeline skip that work when the same diagram is laid
// out again with the same settings.
//
// Two implementations are provided:
//
//   - [FileCache] keeps entries as JSON files under a directory, for the CLI
//   - [NullCache] never stores anything, for tests and --no-cache
//
// # Keys
//
// A [Keyer] turns a content hash plus the settings that influence the
// result into a cache key. Keys are content-addressed: editing the diagram
// changes its hash, so stale entries are never served. [ScopedKeyer]
// prefixes keys to keep independent namespaces apart in a shared cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry
	// is a miss (hit == false), not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Entry lifetimes. Entries are content-addressed, so expiry only bounds
// disk usage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
