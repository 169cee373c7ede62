// Package cache stores rendered artifacts and resolved layouts.
//
// Rendering is deterministic: the same document rendered with the same
// options always yields the same bytes. The pipeline therefore keys
// artifacts by a hash of the document and the options (see [Keyer]) and
// consults a [Cache] before rendering.
//
// Three backends are provided:
//
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [FileCache]: one JSON file per entry with expiry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	ArtifactTTL = 7 * 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
)
