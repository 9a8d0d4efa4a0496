// Package pipeline provides the conversion pipeline for framecast.
//
// A [Runner] turns a list of extracted elements into a design tree: it
// prefetches every referenced image while building the elements in
// sequential batches, attaches the results to a root frame and optionally
// materializes the tree through a host. The CLI and the API both go
// through the Runner so conversions behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Run(ctx, page.Elements, pipeline.Options{
//	    Title:    page.Title,
//	    Viewport: page.Viewport,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.SuccessRate)
//
// [Runner.Convert] additionally materializes into an in-memory
// [host.Document] and caches it by input hash.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/build"
	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	"github.com/matzehuels/framecast/pkg/host"
	"github.com/matzehuels/framecast/pkg/observability"
	"github.com/matzehuels/framecast/pkg/perf"
	"github.com/matzehuels/framecast/pkg/progress"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultMaxConcurrentDownloads = asset.DefaultMaxConcurrent
	DefaultAssetBatchSize         = asset.DefaultBatchSize
	DefaultAssetTimeout           = asset.DefaultTimeout
	DefaultMaxImageBytes          = asset.DefaultMaxBytes

	// DefaultNodeBatchSize is the number of top-level elements built
	// concurrently before the runner pauses.
	DefaultNodeBatchSize = 15

	// DefaultInterBatchDelay is the pause between node batches. It doubles
	// while batches average longer than [DefaultSlowBatchThreshold].
	DefaultInterBatchDelay    = 20 * time.Millisecond
	DefaultSlowBatchThreshold = time.Second

	// DefaultMaxProcessingTime is the ceiling for a whole conversion.
	DefaultMaxProcessingTime = 5 * time.Minute

	// DefaultCleanupInterval is the number of batches between cache
	// eviction passes.
	DefaultCleanupInterval = 50

	// DefaultTitle names documents whose page has no title.
	DefaultTitle = "Converted Website"

	// TTLDocument is how long converted documents stay cached.
	TTLDocument = 24 * time.Hour
)

// Tree render formats accepted by the CLI and the API.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidTreeFormats is the set of supported tree render formats.
var ValidTreeFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateTreeFormat checks that a tree render format is valid.
func ValidateTreeFormat(format string) error {
	if !ValidTreeFormats[format] {
		return fmt.Errorf("invalid tree format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options - Conversion Configuration
// =============================================================================

// Options contains all configuration for one conversion. It supports JSON
// serialization for API requests; durations are nanoseconds.
type Options struct {
	// Asset options
	MaxConcurrentDownloads int           `json:"max_concurrent_downloads,omitempty"`
	AssetBatchSize         int           `json:"asset_batch_size,omitempty"`
	AssetTimeout           time.Duration `json:"asset_timeout,omitempty"`
	AssetAttempts          int           `json:"asset_attempts,omitempty"`
	MaxImageBytes          int64         `json:"max_image_bytes,omitempty"`
	SupportedImageTypes    []string      `json:"supported_image_types,omitempty"`

	// Build options
	NodeBatchSize     int           `json:"node_batch_size,omitempty"`
	InterBatchDelay   time.Duration `json:"inter_batch_delay,omitempty"`
	MaxProcessingTime time.Duration `json:"max_processing_time,omitempty"`
	CleanupInterval   int           `json:"cleanup_interval,omitempty"`
	// SlowBatchThreshold is the average batch time, counted from the first
	// batch and including delays, above which InterBatchDelay doubles.
	SlowBatchThreshold time.Duration `json:"slow_batch_threshold,omitempty"`

	// Document options
	Title    string           `json:"title,omitempty"`
	Viewport element.Viewport `json:"viewport"`
	Refresh  bool             `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	ID       string            `json:"-"`
	Logger   *log.Logger       `json:"-"`
	Progress progress.Reporter `json:"-"`
	// Host receives the finished tree. Nil skips materialization.
	Host host.Host `json:"-"`

	validated bool
}

// Result contains the outputs of one conversion.
type Result struct {
	ID string

	// Root is the page frame holding every top-level node.
	Root *design.Frame
	// Nodes lists every node in the tree, Root first.
	Nodes []design.Node

	Stats  Stats
	Report perf.Report
	Assets asset.Stats
	// Fonts maps each family used to its variants.
	Fonts map[string][]string
	// Sections groups the top-level elements by landmark tag.
	Sections []build.Section
	// Handles is set when the tree was materialized.
	Handles *host.Emitted
}

// Stats contains conversion counts.
type Stats struct {
	Total         int           `json:"total"`
	Created       int           `json:"created"`
	Failed        int           `json:"failed"`
	Skipped       int           `json:"skipped"`
	ImagesApplied int           `json:"imagesApplied"`
	ImagesFailed  int           `json:"imagesFailed"`
	Elapsed       time.Duration `json:"elapsed"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and rejects unusable values.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxConcurrentDownloads < 0 || o.NodeBatchSize < 0 || o.AssetBatchSize < 0 || o.CleanupInterval < 0 {
		return fmt.Errorf("batch sizes and limits must not be negative")
	}
	if o.MaxConcurrentDownloads > 64 {
		return fmt.Errorf("max_concurrent_downloads %d exceeds 64", o.MaxConcurrentDownloads)
	}
	if o.Viewport.Width < 0 || o.Viewport.Height < 0 {
		return fmt.Errorf("viewport must not be negative")
	}

	if o.MaxConcurrentDownloads == 0 {
		o.MaxConcurrentDownloads = DefaultMaxConcurrentDownloads
	}
	if o.AssetBatchSize == 0 {
		o.AssetBatchSize = DefaultAssetBatchSize
	}
	if o.AssetTimeout <= 0 {
		o.AssetTimeout = DefaultAssetTimeout
	}
	if o.MaxImageBytes <= 0 {
		o.MaxImageBytes = DefaultMaxImageBytes
	}
	if len(o.SupportedImageTypes) == 0 {
		o.SupportedImageTypes = asset.DefaultSupportedTypes
	}
	if o.NodeBatchSize == 0 {
		o.NodeBatchSize = DefaultNodeBatchSize
	}
	if o.InterBatchDelay < 0 {
		o.InterBatchDelay = 0
	} else if o.InterBatchDelay == 0 {
		o.InterBatchDelay = DefaultInterBatchDelay
	}
	if o.MaxProcessingTime <= 0 {
		o.MaxProcessingTime = DefaultMaxProcessingTime
	}
	if o.CleanupInterval == 0 {
		o.CleanupInterval = DefaultCleanupInterval
	}
	if o.SlowBatchThreshold <= 0 {
		o.SlowBatchThreshold = DefaultSlowBatchThreshold
	}
	if o.Viewport.Width == 0 || o.Viewport.Height == 0 {
		o.Viewport = element.DefaultViewport
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Progress == nil {
		o.Progress = progress.Nop{}
	}
	o.validated = true
	return nil
}

// AssetOptions returns the asset pipeline settings for o.
func (o *Options) AssetOptions(l2 cache.Cache, keyer cache.Keyer, hooks observability.AssetHooks) asset.Options {
	return asset.Options{
		MaxConcurrent:  o.MaxConcurrentDownloads,
		BatchSize:      o.AssetBatchSize,
		Timeout:        o.AssetTimeout,
		MaxBytes:       o.MaxImageBytes,
		SupportedTypes: o.SupportedImageTypes,
		Attempts:       o.AssetAttempts,
		L2:             l2,
		Keyer:          keyer,
		Logger:         o.Logger,
		Hooks:          hooks,
	}
}

// DocumentKeyOpts returns cache key options for converted documents.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		ViewportWidth:  o.Viewport.Width,
		ViewportHeight: o.Viewport.Height,
		Materialize:    true,
	}
}
