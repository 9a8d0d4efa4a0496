package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/build"
	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/host"
	"github.com/matzehuels/framecast/pkg/observability"
	"github.com/matzehuels/framecast/pkg/perf"
	"github.com/matzehuels/framecast/pkg/progress"
	"github.com/matzehuels/framecast/pkg/style"
)

// ErrBusy is returned when Run is called on a runner that is already
// running.
var ErrBusy = errors.New("runner is already running a conversion")

// Runner executes conversions. A runner runs one conversion at a time and
// exposes its state; create one per concurrent conversion. Runners may
// share the same cache.
type Runner struct {
	// Cache is the persistent second level for images and the store for
	// converted documents.
	Cache cache.Cache
	Keyer cache.Keyer
	// Fetcher retrieves images. Nil uses asset.NewHTTPFetcher.
	Fetcher asset.Fetcher
	Hooks   observability.Hooks
	Logger  *log.Logger

	running atomic.Bool
	mu      sync.Mutex
	state   State
	assets  *asset.Pipeline
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// AssetStats returns the live counters of the running conversion's asset
// pipeline, or zero when idle.
func (r *Runner) AssetStats() asset.Stats {
	r.mu.Lock()
	a := r.assets
	r.mu.Unlock()
	if a == nil {
		return asset.Stats{}
	}
	return a.Stats()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// run holds the per-conversion collaborators.
type run struct {
	id      string
	opts    Options
	logger  *log.Logger
	report  progress.Reporter
	hooks   observability.Hooks
	assets  *asset.Pipeline
	builder *build.Builder
	fonts   *host.FontCache
	monitor *perf.Monitor
}

// Run converts elements into a design tree. Per-element failures are
// counted in the result; only TIMEOUT and INTERNAL errors are returned.
// On timeout no partial tree is returned.
func (r *Runner) Run(ctx context.Context, elements []*element.Element, opts Options) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.running.Store(false)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		r.setState(StateFailed)
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "invalid options")
	}
	ru := r.prepare(opts)
	defer ru.assets.Reset()

	ru.hooks.Conversion.OnConversionStart(ctx, ru.id, len(elements))
	start := time.Now()
	res, err := r.execute(ctx, ru, elements)
	if err != nil {
		if ferrors.Is(err, ferrors.ErrCodeTimeout) {
			r.setState(StateTimedOut)
		} else {
			r.setState(StateFailed)
		}
		ru.hooks.Conversion.OnConversionComplete(ctx, ru.id, 0, time.Since(start), err)
		return nil, err
	}
	r.setState(StateDone)
	ru.report.Report(progress.Event{Phase: progress.PhaseDone, Message: "conversion complete", Percent: 100})
	ru.hooks.Conversion.OnConversionComplete(ctx, ru.id, len(res.Nodes), time.Since(start), nil)
	return res, nil
}

func (r *Runner) prepare(opts Options) *run {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	hooks := r.Hooks.WithDefaults()
	logger := opts.Logger.With("conversion", id)
	ru := &run{
		id:      id,
		opts:    opts,
		logger:  logger,
		report:  progress.Monotonic(opts.Progress),
		hooks:   hooks,
		assets:  asset.New(r.Fetcher, opts.AssetOptions(r.Cache, r.Keyer, hooks.Asset)),
		monitor: perf.New(),
	}

	bo := build.Options{Assets: ru.assets, Logger: logger}
	if opts.Host != nil {
		ru.fonts = host.NewFontCache(opts.Host, logger)
		bo.Fonts = ru.fonts
	}
	ru.builder = build.New(bo)

	r.mu.Lock()
	r.assets = ru.assets
	r.state = StateBuilding
	r.mu.Unlock()
	return ru
}

func (r *Runner) execute(ctx context.Context, ru *run, elements []*element.Element) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.opts.MaxProcessingTime)
	defer cancel()
	deadline, _ := ctx.Deadline()

	ru.monitor.Start(len(elements))
	ru.report.Report(progress.At(progress.PhasePrefetch, 0, "collecting images"))

	urls := build.CollectURLs(elements)
	prefetched := make(chan struct{})
	go func() {
		defer close(prefetched)
		ru.assets.ResolveMany(ctx, urls, func(p asset.Progress) {
			ru.report.Report(progress.At(progress.PhasePrefetch, p.Percent/100,
				fmt.Sprintf("fetched images %d/%d", p.Done, p.Total)))
		})
	}()
	ru.logger.Debug("prefetching images", "urls", len(urls))

	nodes, failed, err := r.buildBatches(ctx, ru, elements, deadline)
	if err != nil {
		return nil, err
	}

	r.setState(StateFinalizing)
	ru.report.Report(progress.At(progress.PhaseFinalize, 0, "waiting for images"))
	select {
	case <-prefetched:
	case <-ctx.Done():
		return nil, ceilingError(ctx, ru.opts.MaxProcessingTime)
	}

	root := design.NewFrame("Website: "+ru.opts.Title, design.Rect{
		Width:  ru.opts.Viewport.Width,
		Height: ru.opts.Viewport.Height,
	})
	root.Fills = []style.Paint{style.Solid(style.White)}
	for _, n := range nodes {
		if err := design.Attach(root, n); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "attach %s", n.Common().Name)
		}
	}
	design.SortChildren(root)

	res := &Result{
		ID:       ru.id,
		Root:     root,
		Nodes:    design.Flatten(root),
		Fonts:    build.CollectFonts(elements),
		Sections: build.Sections(elements),
	}
	for _, sec := range res.Sections {
		ru.logger.Debug("section", "name", sec.Name, "elements", len(sec.Elements))
	}

	if ru.opts.Host != nil {
		ru.report.Report(progress.At(progress.PhaseFinalize, 0.5, "materializing nodes"))
		emitted, err := host.Emit(ctx, ru.opts.Host, root, ru.fonts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ceilingError(ctx, ru.opts.MaxProcessingTime)
			}
			return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "materialize")
		}
		res.Handles = emitted
	}

	bs := ru.builder.Stats()
	ru.monitor.AddImages(int(bs.ImagesOK))
	ru.monitor.AddSkipped(int(bs.Skipped))
	ru.monitor.Finish()
	res.Report = ru.monitor.Report()
	res.Assets = ru.assets.Stats()
	res.Stats = Stats{
		Total:         len(elements),
		Created:       len(res.Nodes) - 1,
		Failed:        failed,
		Skipped:       int(bs.Skipped),
		ImagesApplied: int(bs.ImagesOK),
		ImagesFailed:  int(bs.ImagesFailed),
		Elapsed:       res.Report.Duration,
	}
	ru.report.Report(progress.At(progress.PhaseFinalize, 1, "finalized"))
	ru.logger.Info("converted elements",
		"elements", len(elements),
		"nodes", res.Stats.Created,
		"failed", failed,
		"images", bs.ImagesOK,
		"duration", res.Stats.Elapsed)
	return res, nil
}

// buildBatches builds the top-level elements in sequential batches and
// returns the successes in input order.
func (r *Runner) buildBatches(ctx context.Context, ru *run, elements []*element.Element, deadline time.Time) ([]design.Node, int, error) {
	size := ru.opts.NodeBatchSize
	batches := (len(elements) + size - 1) / size
	delay := ru.opts.InterBatchDelay
	begin := time.Now()

	nodes := make([]design.Node, 0, len(elements))
	failed := 0
	for b := range batches {
		if ctx.Err() != nil {
			return nil, 0, ceilingError(ctx, ru.opts.MaxProcessingTime)
		}
		lo, hi := b*size, min((b+1)*size, len(elements))
		start := time.Now()

		built := make([]design.Node, hi-lo)
		errs := make([]error, hi-lo)
		var g errgroup.Group
		for i, el := range elements[lo:hi] {
			g.Go(func() error {
				built[i], errs[i] = ru.builder.Build(ctx, el, 0)
				return nil
			})
		}
		_ = g.Wait()
		if ctx.Err() != nil {
			return nil, 0, ceilingError(ctx, ru.opts.MaxProcessingTime)
		}

		created, batchFailed := 0, 0
		for i, n := range built {
			if err := errs[i]; err != nil {
				batchFailed++
				ru.logger.Warn("element failed", "index", lo+i, "err", err)
				continue
			}
			if n == nil {
				continue
			}
			n.Common().Order = lo + i
			nodes = append(nodes, n)
			created += design.Count(n)
		}
		failed += batchFailed

		took := time.Since(start)
		ru.monitor.RecordBatch(took, hi-lo, created, batchFailed)
		ru.hooks.Conversion.OnBatchComplete(ctx, ru.id, b+1, created, batchFailed, took)
		ru.report.Report(progress.At(progress.PhaseBuild, float64(b+1)/float64(batches),
			fmt.Sprintf("built batch %d/%d", b+1, batches)))
		ru.logger.Debug("built batch",
			"batch", b+1,
			"of", batches,
			"nodes", created,
			"failed", batchFailed,
			"remaining", time.Until(deadline).Round(time.Millisecond))

		if (b+1)%ru.opts.CleanupInterval == 0 {
			evicted := ru.assets.Cleanup()
			ru.monitor.Cleanup()
			ru.logger.Debug("cleanup", "batch", b+1, "evicted", evicted)
		}

		if b == batches-1 {
			break
		}
		next := batchDelay(ru.opts.InterBatchDelay, ru.opts.SlowBatchThreshold, time.Since(begin), b+1)
		if next != delay {
			ru.logger.Info("adjusting batch delay", "delay", next, "batch", b+1)
			delay = next
		}
		select {
		case <-ctx.Done():
			return nil, 0, ceilingError(ctx, ru.opts.MaxProcessingTime)
		case <-time.After(delay):
		}
	}
	return nodes, failed, nil
}

// batchDelay returns the pause before the next batch: twice base while the
// average time per batch so far exceeds threshold, base otherwise.
func batchDelay(base, threshold, elapsed time.Duration, batches int) time.Duration {
	if batches > 0 && elapsed/time.Duration(batches) > threshold {
		return base * 2
	}
	return base
}

// ceilingError reports why ctx ended: TIMEOUT when the processing ceiling
// expired, INTERNAL wrapping context.Canceled when the caller cancelled.
func ceilingError(ctx context.Context, limit time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ferrors.Wrap(ferrors.ErrCodeTimeout, ctx.Err(), "conversion exceeded %s", limit)
	}
	return ferrors.Wrap(ferrors.ErrCodeInternal, ctx.Err(), "conversion cancelled")
}
