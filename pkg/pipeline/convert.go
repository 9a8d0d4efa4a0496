package pipeline

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/host"
)

// Conversion is the outcome of [Runner.Convert].
type Conversion struct {
	ID       string
	Key      string
	Document *host.Document
	// Result is nil when the document came from the cache.
	Result   *Result
	CacheHit bool
}

// Convert runs a whole page into a fresh [host.Document], serving it from
// the runner cache when the same page and viewport were converted before.
// opts.Host is replaced by the new document.
func (r *Runner) Convert(ctx context.Context, page *element.Page, opts Options) (*Conversion, error) {
	if page == nil {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "no page")
	}
	if opts.Viewport.Width == 0 || opts.Viewport.Height == 0 {
		opts.Viewport = page.Viewport
	}
	if opts.Title == "" {
		opts.Title = page.Title
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "invalid options")
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	input, err := json.Marshal(page)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "encode page")
	}
	key := r.Keyer.DocumentKey(cache.Hash(input), opts.DocumentKeyOpts())

	if !opts.Refresh {
		if doc, ok := r.cachedDocument(ctx, key); ok {
			opts.Logger.Debug("document cache hit", "key", key)
			return &Conversion{ID: opts.ID, Key: key, Document: doc, CacheHit: true}, nil
		}
	}

	doc := host.NewDocument(page.Name())
	opts.Host = doc
	res, err := r.Run(ctx, page.Elements, opts)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLDocument); err != nil {
			opts.Logger.Warn("cache document", "key", key, "err", err)
		}
	}
	return &Conversion{ID: res.ID, Key: key, Document: doc, Result: res}, nil
}

func (r *Runner) cachedDocument(ctx context.Context, key string) (*host.Document, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var doc host.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}
