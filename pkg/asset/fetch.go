package asset

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/httputil"
)

// Response is a fetched payload. The caller closes Body.
type Response struct {
	Body        io.ReadCloser
	ContentType string

	// ContentLength is -1 when unknown.
	ContentLength int64
}

// Fetcher retrieves the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// Request headers sent with every image fetch.
var defaultHeaders = map[string]string{
	"User-Agent":    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":        "image/*,*/*;q=0.8",
	"Cache-Control": "no-cache",
}

// HTTPFetcher fetches over net/http.
type HTTPFetcher struct {
	client  *http.Client
	headers map[string]string
}

// NewHTTPFetcher returns a fetcher using client, or a client with a 30s
// overall timeout when nil. The pipeline applies its own per-request
// timeout through the context.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{client: client, headers: defaultHeaders}
}

// Fetch performs a GET. Network failures and 5xx responses are transient.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeAssetUnsupportedURL, err, "build request")
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ferrors.Wrap(ferrors.ErrCodeAssetTimeout, err, "fetch %s", url)
		}
		if ctx.Err() != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeAssetNetwork, ctx.Err(), "fetch %s", url)
		}
		return nil, httputil.Transient(ferrors.Wrap(ferrors.ErrCodeAssetNetwork, err, "fetch %s", url))
	}
	if err := checkStatus(url, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return &Response{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

func checkStatus(url string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		after := httputil.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return httputil.TransientAfter(ferrors.New(ferrors.ErrCodeAssetNetwork, "fetch %s: status %d", url, code), after)
	case code >= 500:
		return httputil.Transient(ferrors.New(ferrors.ErrCodeAssetNetwork, "fetch %s: status %d", url, code))
	default:
		return ferrors.New(ferrors.ErrCodeAssetNetwork, "fetch %s: status %d", url, code)
	}
}
