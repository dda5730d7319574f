// Package cache stores rendered artifacts so repeated queries skip Graphviz.
//
// The CLI uses a [FileCache] under the XDG cache directory; [NullCache]
// disables caching (--no-cache). Keys come from a [Keyer] and are derived
// from a hash of the DOT source plus the render options, so any change to
// the path set, colors, format or engine produces a fresh entry.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered images stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts holds the render options that distinguish artifacts
// produced from the same DOT source.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Engine string `json:"engine"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered artifact of the DOT source
	// with the given hash.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}
