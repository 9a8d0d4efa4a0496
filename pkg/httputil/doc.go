// Package httputil provides HTTP helpers shared by framecast's network
// clients.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for
// failures wrapped in [RetryableError]. Callers decide what is transient:
// the asset fetcher wraps connection errors, 5xx and 429 responses, and
// leaves other 4xx responses and policy violations (wrong content type,
// oversized payloads) unwrapped so they fail fast. A 429 carries the
// server's Retry-After through [TransientAfter].
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Transient(err)
//	    }
//	    ...
//	})
//
// A single attempt disables retry altogether; the function runs once and
// its error is returned as is.
package httputil
