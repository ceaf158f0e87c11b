package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/worldart"
	"golang.org/x/time/rate"
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure ThrottledFetcher implements worldart.Fetcher at compile time.
var _ worldart.Fetcher = (*ThrottledFetcher)(nil)

// ThrottledFetcher waits for the domain limiter before every fetch.
type ThrottledFetcher struct {
	Fetcher worldart.Fetcher
	Limiter *DomainLimiter
}

// NewThrottledFetcher wraps next with a limit of rps requests per second
// per domain.
func NewThrottledFetcher(next worldart.Fetcher, rps float64) *ThrottledFetcher {
	return &ThrottledFetcher{Fetcher: next, Limiter: NewDomainLimiter(rps)}
}

func (f *ThrottledFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", worldart.Errorf(worldart.EINVALID, "invalid URL %q", rawURL)
	}
	if err := f.Limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return f.Fetcher.Fetch(ctx, rawURL)
}

func (f *ThrottledFetcher) Close() error {
	return f.Fetcher.Close()
}
