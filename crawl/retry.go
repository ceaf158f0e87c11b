package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/worldart"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, waiting delays[i]
// before retry i+1. Context errors and client error statuses are returned
// without retrying.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		var statusErr *worldart.StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

// Ensure RetryFetcher implements worldart.Fetcher at compile time.
var _ worldart.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed fetches of the wrapped Fetcher with backoff.
// Empty pages are results, not failures, and are not retried.
type RetryFetcher struct {
	Fetcher worldart.Fetcher
	Delays  []time.Duration
	Log     LogFunc
}

// NewRetryFetcher wraps next with retries. A nil delays slice uses
// DefaultRetryDelays.
func NewRetryFetcher(next worldart.Fetcher, delays []time.Duration) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{Fetcher: next, Delays: delays}
}

func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return FetchWithRetryDelays(ctx, url, f.Fetcher.Fetch, f.Log, f.Delays)
}

func (f *RetryFetcher) Close() error {
	return f.Fetcher.Close()
}
