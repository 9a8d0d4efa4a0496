package asset

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/observability"
)

// Defaults for [Options].
const (
	DefaultMaxConcurrent = 5
	DefaultBatchSize     = 3
	DefaultTimeout       = 10 * time.Second
	DefaultMaxBytes      = 5 * 1024 * 1024
	DefaultCacheCapacity = 100
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultL2TTL         = 7 * 24 * time.Hour
)

// DefaultSupportedTypes is the content-type allowlist.
var DefaultSupportedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

// Options configures a [Pipeline]. Zero values take the defaults above.
type Options struct {
	MaxConcurrent  int
	BatchSize      int
	Timeout        time.Duration
	MaxBytes       int64
	SupportedTypes []string
	CacheCapacity  int

	// Attempts is the number of tries per fetch. Only transient failures
	// (network errors, 5xx) are retried.
	Attempts   int
	RetryDelay time.Duration

	// L2 persists fetched bytes across runs. Nil disables it.
	L2    cache.Cache
	Keyer cache.Keyer
	L2TTL time.Duration

	Logger *log.Logger
	Hooks  observability.AssetHooks
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if len(o.SupportedTypes) == 0 {
		o.SupportedTypes = DefaultSupportedTypes
	}
	if o.CacheCapacity <= 0 {
		o.CacheCapacity = DefaultCacheCapacity
	}
	if o.Attempts <= 0 {
		o.Attempts = 1
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.L2TTL <= 0 {
		o.L2TTL = DefaultL2TTL
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Hooks == nil {
		o.Hooks = observability.NoopAssetHooks{}
	}
}

// Validate rejects settings that cannot work after defaults are applied.
func (o Options) Validate() error {
	if o.MaxConcurrent > 64 {
		return fmt.Errorf("max concurrent downloads %d exceeds 64", o.MaxConcurrent)
	}
	if o.CacheCapacity < 5 {
		return fmt.Errorf("cache capacity %d is below 5", o.CacheCapacity)
	}
	return nil
}
