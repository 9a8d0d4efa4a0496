// Package cache provides the byte-level cache backends behind the asset
// pipeline's persistent second level.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything
//
// Every backend implements [Cache]. Keys come from a [Keyer] so that
// several deployments can share one backend through [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads by key.
type Cache interface {
	// Get returns the payload for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// AssetKey returns the key for an image fetched from url.
	AssetKey(url string) string

	// DocumentKey returns the key for a converted document, derived from
	// the hash of its input and the option set that produced it.
	DocumentKey(inputHash string, opts DocumentKeyOpts) string
}

// DocumentKeyOpts are the conversion options that change a document.
type DocumentKeyOpts struct {
	ViewportWidth  float64 `json:"vw"`
	ViewportHeight float64 `json:"vh"`
	Materialize    bool    `json:"m"`
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AssetKey hashes the URL so keys are safe for every backend.
func (DefaultKeyer) AssetKey(url string) string {
	return hashKey("asset", url)
}

// DocumentKey hashes the input hash together with the options.
func (DefaultKeyer) DocumentKey(inputHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", inputHash, opts)
}
