package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs `convert --no-cache` and stands in
// when a configured backend cannot be reached, so every Get misses and
// the pipeline fetches and builds afresh.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache { return NullCache{} }

// Get misses unless ctx is already done.
func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set discards data.
func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, _ string) error { return ctx.Err() }

// Close is a no-op.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
