// Package config loads framecast settings from a TOML file and FRAMECAST_*
// environment variables. Environment values win over the file; command
// line flags are applied by the caller on top of both.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/pipeline"
	"github.com/matzehuels/framecast/pkg/store"
)

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	Assets      Assets      `toml:"assets"`
	Performance Performance `toml:"performance"`
	Cache       Cache       `toml:"cache"`
	Store       Store       `toml:"store"`
	Server      Server      `toml:"server"`
}

type Assets struct {
	MaxConcurrent  int      `toml:"max_concurrent"`
	BatchSize      int      `toml:"batch_size"`
	Timeout        Duration `toml:"timeout"`
	Attempts       int      `toml:"attempts"`
	MaxBytes       int64    `toml:"max_bytes"`
	SupportedTypes []string `toml:"supported_types"`
}

type Performance struct {
	NodeBatchSize      int      `toml:"node_batch_size"`
	InterBatchDelay    Duration `toml:"inter_batch_delay"`
	SlowBatchThreshold Duration `toml:"slow_batch_threshold"`
	MaxProcessingTime  Duration `toml:"max_processing_time"`
	CleanupInterval    int      `toml:"cleanup_interval"`
}

type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	// Prefix scopes every cache key, so deployments can share a backend.
	Prefix string `toml:"prefix"`
}

type Store struct {
	Backend    string   `toml:"backend"`
	Dir        string   `toml:"dir"`
	MongoURI   string   `toml:"mongo_uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	TTL        Duration `toml:"ttl"`
}

type Server struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Assets: Assets{
			MaxConcurrent: pipeline.DefaultMaxConcurrentDownloads,
			BatchSize:     pipeline.DefaultAssetBatchSize,
			Timeout:       Duration{pipeline.DefaultAssetTimeout},
			Attempts:      3,
			MaxBytes:      pipeline.DefaultMaxImageBytes,
		},
		Performance: Performance{
			NodeBatchSize:      pipeline.DefaultNodeBatchSize,
			InterBatchDelay:    Duration{pipeline.DefaultInterBatchDelay},
			SlowBatchThreshold: Duration{pipeline.DefaultSlowBatchThreshold},
			MaxProcessingTime:  Duration{pipeline.DefaultMaxProcessingTime},
			CleanupInterval:    pipeline.DefaultCleanupInterval,
		},
		Cache: Cache{Backend: BackendFile},
		Store: Store{
			Backend: BackendMemory,
			TTL:     Duration{store.DefaultTTL},
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 32 << 20,
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{pipeline.DefaultMaxProcessingTime + 30*time.Second},
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment. Unknown keys in the file are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("load %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Assets.MaxConcurrent = envInt("FRAMECAST_MAX_CONCURRENT_DOWNLOADS", c.Assets.MaxConcurrent)
	c.Assets.Timeout.Duration = envDuration("FRAMECAST_ASSET_TIMEOUT", c.Assets.Timeout.Duration)
	c.Assets.MaxBytes = envInt64("FRAMECAST_MAX_IMAGE_BYTES", c.Assets.MaxBytes)

	c.Performance.NodeBatchSize = envInt("FRAMECAST_NODE_BATCH_SIZE", c.Performance.NodeBatchSize)
	c.Performance.MaxProcessingTime.Duration = envDuration("FRAMECAST_MAX_PROCESSING_TIME", c.Performance.MaxProcessingTime.Duration)

	c.Cache.Backend = envOr("FRAMECAST_CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Dir = envOr("FRAMECAST_CACHE_DIR", c.Cache.Dir)
	c.Cache.RedisURL = envOr("FRAMECAST_REDIS_URL", c.Cache.RedisURL)
	c.Cache.Prefix = envOr("FRAMECAST_CACHE_PREFIX", c.Cache.Prefix)

	c.Store.Backend = envOr("FRAMECAST_STORE_BACKEND", c.Store.Backend)
	c.Store.Dir = envOr("FRAMECAST_STORE_DIR", c.Store.Dir)
	c.Store.MongoURI = envOr("FRAMECAST_MONGO_URI", c.Store.MongoURI)

	c.Server.Addr = envOr("FRAMECAST_ADDR", c.Server.Addr)
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend redis requires redis_url")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile:
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store backend mongo requires mongo_uri")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	return nil
}

// PipelineOptions returns the conversion options described by c.
func (c Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		MaxConcurrentDownloads: c.Assets.MaxConcurrent,
		AssetBatchSize:         c.Assets.BatchSize,
		AssetTimeout:           c.Assets.Timeout.Duration,
		AssetAttempts:          c.Assets.Attempts,
		MaxImageBytes:          c.Assets.MaxBytes,
		SupportedImageTypes:    c.Assets.SupportedTypes,
		NodeBatchSize:          c.Performance.NodeBatchSize,
		InterBatchDelay:        c.Performance.InterBatchDelay.Duration,
		SlowBatchThreshold:     c.Performance.SlowBatchThreshold.Duration,
		MaxProcessingTime:      c.Performance.MaxProcessingTime.Duration,
		CleanupInterval:        c.Performance.CleanupInterval,
	}
	if len(opts.SupportedImageTypes) == 0 {
		opts.SupportedImageTypes = asset.DefaultSupportedTypes
	}
	return opts
}

// OpenCache opens the configured persistent cache.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisURL)
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// Keyer returns the cache key scheme, scoped by the configured prefix.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// OpenStore opens the configured conversion record store.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case BackendFile:
		return store.NewFileStore(c.Store.Dir)
	case BackendMongo:
		return store.NewMongoStore(ctx, c.Store.MongoURI, c.Store.Database, c.Store.Collection)
	}
	return store.NewMemoryStore(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
