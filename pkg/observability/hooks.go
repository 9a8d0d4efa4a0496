// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks are injected through options rather than registered globally, so
// two conversions in one process can report to different backends.
// Every hook has a no-op implementation, and [LogConversionHooks] and
// [LogAssetHooks] forward events to a charmbracelet logger.
//
// # Usage
//
//	hooks := observability.Hooks{Conversion: observability.NewLogConversionHooks(logger)}
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Hooks = hooks
package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Conversion Hooks
// =============================================================================

// ConversionHooks receives events from the batch runner.
type ConversionHooks interface {
	OnConversionStart(ctx context.Context, id string, elements int)
	OnBatchComplete(ctx context.Context, id string, batch, built, failed int, duration time.Duration)
	OnConversionComplete(ctx context.Context, id string, nodes int, duration time.Duration, err error)
}

// =============================================================================
// Asset Hooks
// =============================================================================

// AssetHooks receives events from the asset pipeline.
type AssetHooks interface {
	// OnCacheHit records an image served without fetching. level is
	// "memory" or "persistent".
	OnCacheHit(ctx context.Context, level string)

	// OnFetch records a completed fetch attempt.
	OnFetch(ctx context.Context, url string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnConversionStart(context.Context, string, int) {}
func (NoopConversionHooks) OnBatchComplete(context.Context, string, int, int, int, time.Duration) {
}
func (NoopConversionHooks) OnConversionComplete(context.Context, string, int, time.Duration, error) {
}

// NoopAssetHooks is a no-op implementation of AssetHooks.
type NoopAssetHooks struct{}

func (NoopAssetHooks) OnCacheHit(context.Context, string)                         {}
func (NoopAssetHooks) OnFetch(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Hook Set
// =============================================================================

// Hooks bundles the hook categories. Nil members are treated as no-ops.
type Hooks struct {
	Conversion ConversionHooks
	Asset      AssetHooks
}

// WithDefaults returns h with nil members replaced by no-ops.
func (h Hooks) WithDefaults() Hooks {
	if h.Conversion == nil {
		h.Conversion = NoopConversionHooks{}
	}
	if h.Asset == nil {
		h.Asset = NoopAssetHooks{}
	}
	return h
}

// =============================================================================
// Logger Implementations
// =============================================================================

// LogConversionHooks logs conversion events at info level.
type LogConversionHooks struct{ Logger *log.Logger }

// NewLogConversionHooks returns hooks writing to logger.
func NewLogConversionHooks(logger *log.Logger) *LogConversionHooks {
	return &LogConversionHooks{Logger: logger}
}

func (h *LogConversionHooks) OnConversionStart(_ context.Context, id string, elements int) {
	h.Logger.Info("conversion started", "id", id, "elements", elements)
}

func (h *LogConversionHooks) OnBatchComplete(_ context.Context, id string, batch, built, failed int, d time.Duration) {
	h.Logger.Debug("batch complete", "id", id, "batch", batch, "built", built, "failed", failed, "took", d)
}

func (h *LogConversionHooks) OnConversionComplete(_ context.Context, id string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("conversion failed", "id", id, "took", d, "err", err)
		return
	}
	h.Logger.Info("conversion complete", "id", id, "nodes", nodes, "took", d)
}

// LogAssetHooks logs asset events at debug level.
type LogAssetHooks struct{ Logger *log.Logger }

// NewLogAssetHooks returns hooks writing to logger.
func NewLogAssetHooks(logger *log.Logger) *LogAssetHooks {
	return &LogAssetHooks{Logger: logger}
}

func (h *LogAssetHooks) OnCacheHit(_ context.Context, level string) {
	h.Logger.Debug("image cache hit", "level", level)
}

func (h *LogAssetHooks) OnFetch(_ context.Context, url string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("image fetch failed", "url", url, "took", d, "err", err)
		return
	}
	h.Logger.Debug("image fetched", "url", url, "bytes", size, "took", d)
}
