package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/worldart"
)

// Ensure PageCache implements worldart.Fetcher at compile time.
var _ worldart.Fetcher = (*PageCache)(nil)

// PageCache is a Fetcher that keeps decoded pages on disk and only asks
// the wrapped Fetcher for pages it has not seen. Empty pages and errors
// are not cached.
type PageCache struct {
	dir  string
	next worldart.Fetcher
}

// NewPageCache creates a PageCache storing pages in dir.
func NewPageCache(dir string, next worldart.Fetcher) *PageCache {
	return &PageCache{dir: dir, next: next}
}

// Path returns the cache file of url.
func (c *PageCache) Path(url string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.html", xxhash.Sum64String(url)))
}

// Fetch returns the cached page of url, fetching and caching it on a miss.
func (c *PageCache) Fetch(ctx context.Context, url string) (string, error) {
	path := c.Path(url)
	b, err := os.ReadFile(path)
	if err == nil {
		return string(b), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	html, err := c.next.Fetch(ctx, url)
	if err != nil || html == "" {
		return html, err
	}
	if err := writeAtomic(path, strings.NewReader(html)); err != nil {
		return "", fmt.Errorf("caching %s: %w", url, err)
	}
	return html, nil
}

// Close closes the wrapped Fetcher.
func (c *PageCache) Close() error {
	return c.next.Close()
}
