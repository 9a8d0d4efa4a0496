package asset

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/httputil"
)

// Pipeline resolves image URLs to cached [Record]s. It is safe for
// concurrent use.
type Pipeline struct {
	opts    Options
	fetcher Fetcher
	logger  *log.Logger
	store   *store

	mu     sync.Mutex
	slots  *semaphore.Weighted
	flight *singleflight.Group

	requested atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	cached    atomic.Int64
	active    atomic.Int64
	peak      atomic.Int64
}

// New creates a pipeline. A nil fetcher uses [NewHTTPFetcher].
func New(fetcher Fetcher, opts Options) *Pipeline {
	opts.SetDefaults()
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}
	return &Pipeline{
		opts:    opts,
		fetcher: fetcher,
		logger:  opts.Logger,
		store:   newStore(opts.CacheCapacity),
		slots:   semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		flight:  new(singleflight.Group),
	}
}

// Options returns the effective options.
func (p *Pipeline) Options() Options { return p.opts }

type loaded struct {
	rec       *Record
	fromCache bool
}

// Resolve returns the record for raw, fetching it on a cache miss.
func (p *Pipeline) Resolve(ctx context.Context, raw string) (*Record, error) {
	p.requested.Add(1)

	url, err := Admit(raw)
	if err != nil {
		p.failed.Add(1)
		return nil, err
	}
	if r, ok := p.store.get(url); ok {
		p.cached.Add(1)
		p.opts.Hooks.OnCacheHit(ctx, "memory")
		return r, nil
	}

	slots, flight := p.current()
	leader := false
	v, err, _ := flight.Do(url, func() (any, error) {
		leader = true
		return p.load(ctx, slots, url)
	})
	if err != nil {
		p.failed.Add(1)
		p.logger.Debug("image failed", "url", url, "err", err)
		return nil, err
	}

	l := v.(loaded)
	if !leader || l.fromCache {
		p.cached.Add(1)
	} else {
		p.completed.Add(1)
	}
	return l.rec, nil
}

func (p *Pipeline) current() (*semaphore.Weighted, *singleflight.Group) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots, p.flight
}

func (p *Pipeline) load(ctx context.Context, slots *semaphore.Weighted, url string) (loaded, error) {
	if r, ok := p.store.get(url); ok {
		return loaded{rec: r, fromCache: true}, nil
	}
	if r := p.fromL2(ctx, url); r != nil {
		p.store.put(r)
		p.opts.Hooks.OnCacheHit(ctx, "persistent")
		return loaded{rec: r, fromCache: true}, nil
	}

	if err := slots.Acquire(ctx, 1); err != nil {
		return loaded{}, ferrors.Wrap(ferrors.ErrCodeAssetTimeout, err, "wait for download slot")
	}
	defer slots.Release(1)
	p.enter()
	defer p.active.Add(-1)

	start := time.Now()
	var rec *Record
	err := httputil.Retry(ctx, p.opts.Attempts, p.opts.RetryDelay, func() error {
		r, err := p.fetchOnce(ctx, url)
		rec = r
		return err
	})
	if err != nil {
		if ferrors.GetCode(err) == "" {
			err = ferrors.Wrap(ferrors.ErrCodeAssetTimeout, err, "fetch %s", url)
		}
		p.opts.Hooks.OnFetch(ctx, url, 0, time.Since(start), err)
		return loaded{}, err
	}
	p.opts.Hooks.OnFetch(ctx, url, rec.Size, time.Since(start), nil)

	p.store.put(rec)
	p.toL2(ctx, rec)
	p.logger.Debug("fetched image", "url", url, "bytes", rec.Size, "type", rec.ContentType)
	return loaded{rec: rec}, nil
}

func (p *Pipeline) enter() {
	n := p.active.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (p *Pipeline) fetchOnce(ctx context.Context, url string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	resp, err := p.fetcher.Fetch(ctx, url)
	switch {
	case err == nil:
	case ferrors.GetCode(err) != "":
		return nil, err
	case ctx.Err() != nil:
		return nil, ferrors.Wrap(ferrors.ErrCodeAssetTimeout, err, "fetch %s", url)
	default:
		return nil, ferrors.Wrap(ferrors.ErrCodeAssetNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.ContentType != "" && !p.supported(resp.ContentType) {
		return nil, ferrors.New(ferrors.ErrCodeAssetFormat, "unsupported image type %q", resp.ContentType)
	}
	if resp.ContentLength > p.opts.MaxBytes {
		return nil, ferrors.New(ferrors.ErrCodeAssetTooLarge, "image is %d bytes, limit %d", resp.ContentLength, p.opts.MaxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.opts.MaxBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeAssetTimeout, err, "read %s", url)
		}
		return nil, httputil.Transient(ferrors.Wrap(ferrors.ErrCodeAssetNetwork, err, "read %s", url))
	}
	if int64(len(data)) > p.opts.MaxBytes {
		return nil, ferrors.New(ferrors.ErrCodeAssetTooLarge, "image exceeds %d bytes", p.opts.MaxBytes)
	}
	if len(data) == 0 {
		return nil, ferrors.New(ferrors.ErrCodeAssetFormat, "empty image body")
	}
	return newRecord(url, resp.ContentType, data), nil
}

// supported matches on the subtype, so "image/svg+xml; charset=utf-8" is
// accepted for "image/svg+xml".
func (p *Pipeline) supported(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, t := range p.opts.SupportedTypes {
		_, sub, ok := strings.Cut(t, "/")
		if !ok {
			sub = t
		}
		if strings.Contains(ct, sub) {
			return true
		}
	}
	return false
}

type l2Entry struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

func (p *Pipeline) fromL2(ctx context.Context, url string) *Record {
	if p.opts.L2 == nil {
		return nil
	}
	raw, ok, err := p.opts.L2.Get(ctx, p.opts.Keyer.AssetKey(url))
	if err != nil || !ok {
		return nil
	}
	var e l2Entry
	if json.Unmarshal(raw, &e) != nil || len(e.Data) == 0 {
		return nil
	}
	return newRecord(url, e.ContentType, e.Data)
}

func (p *Pipeline) toL2(ctx context.Context, r *Record) {
	if p.opts.L2 == nil {
		return
	}
	raw, err := json.Marshal(l2Entry{ContentType: r.ContentType, Data: r.Data})
	if err != nil {
		return
	}
	if err := p.opts.L2.Set(ctx, p.opts.Keyer.AssetKey(r.URL), raw, p.opts.L2TTL); err != nil {
		p.logger.Debug("asset cache write failed", "url", r.URL, "err", err)
	}
}

// ResolveMany resolves urls in sequential batches of [Options.BatchSize],
// each batch concurrently. Failures are counted and skipped; the result
// maps each successfully resolved input URL to its record. onProgress may
// be nil.
func (p *Pipeline) ResolveMany(ctx context.Context, urls []string, onProgress func(Progress)) map[string]*Record {
	unique := dedupe(urls)
	out := make(map[string]*Record, len(unique))
	if len(unique) == 0 {
		return out
	}

	var mu sync.Mutex
	size := p.opts.BatchSize
	batches := (len(unique) + size - 1) / size
	for b := range batches {
		if ctx.Err() != nil {
			break
		}
		chunk := unique[b*size : min((b+1)*size, len(unique))]

		var g errgroup.Group
		for _, u := range chunk {
			g.Go(func() error {
				rec, err := p.Resolve(ctx, u)
				if err != nil {
					return nil
				}
				mu.Lock()
				out[u] = rec
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		if onProgress != nil {
			done := min((b+1)*size, len(unique))
			onProgress(Progress{
				Batch:   b + 1,
				Batches: batches,
				Done:    done,
				Total:   len(unique),
				Percent: float64(done) / float64(len(unique)) * 100,
			})
		}
	}
	return out
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// Lookup returns a cached record without fetching.
func (p *Pipeline) Lookup(raw string) (*Record, bool) {
	url, err := Admit(raw)
	if err != nil {
		return nil, false
	}
	return p.store.get(url)
}

// Cleanup runs the eviction pass, bringing the cache down to its low
// watermark, and returns the number of records removed.
func (p *Pipeline) Cleanup() int {
	n := p.store.trim()
	if n > 0 {
		p.logger.Debug("evicted images", "count", n)
	}
	return n
}

// Reset clears the cache and counters and installs fresh slots.
func (p *Pipeline) Reset() {
	p.store.reset()
	p.mu.Lock()
	p.slots = semaphore.NewWeighted(int64(p.opts.MaxConcurrent))
	p.flight = new(singleflight.Group)
	p.mu.Unlock()
	for _, c := range []*atomic.Int64{&p.requested, &p.completed, &p.failed, &p.cached, &p.peak} {
		c.Store(0)
	}
}

// Stats returns a snapshot of the counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Requested:  p.requested.Load(),
		Completed:  p.completed.Load(),
		Failed:     p.failed.Load(),
		Cached:     p.cached.Load(),
		Active:     p.active.Load(),
		PeakActive: p.peak.Load(),
		Entries:    p.store.len(),
	}
}
