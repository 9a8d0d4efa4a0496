package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MaxRetryAfter caps a server-provided Retry-After wait.
const MaxRetryAfter = 30 * time.Second

// RetryableError marks a failure worth another attempt. After, when set,
// is the minimum wait the server asked for.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Transient wraps err in a [RetryableError]. A nil err stays nil.
func Transient(err error) error {
	return TransientAfter(err, 0)
}

// TransientAfter is [Transient] with a minimum wait before the next try.
func TransientAfter(err error, after time.Duration) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, After: min(max(after, 0), MaxRetryAfter)}
}

// Retry calls fn up to attempts times. Only [RetryableError] failures are
// retried; the wait starts at delay and doubles, but never undercuts the
// error's After. Returns the last error, or ctx.Err() if cancelled while
// waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := max(delay, re.After)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// ParseRetryAfter reads a Retry-After header given either as seconds or
// as an HTTP date. Unparseable or past values yield zero.
func ParseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(t.Sub(now), 0)
	}
	return 0
}
