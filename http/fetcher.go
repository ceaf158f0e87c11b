// Package http provides the HTTP implementation of worldart.Fetcher for the
// catalog's server-rendered pages, and an image downloader.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.2; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/29.0.1547.2 Safari/537.36"

// Ensure Fetcher implements worldart.Fetcher at compile time.
var _ worldart.Fetcher = (*Fetcher)(nil)

// noiseSelector matches blocks the catalog wraps around content that is
// not meant for parsing.
const noiseSelector = "noembed, noindex"

// Fetcher retrieves catalog pages over HTTP and decodes them to UTF-8.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	proxies   []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient uses client instead of building one. The timeout and
// proxy options are ignored when a client is given.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithProxy routes requests through a proxy picked at random from urls.
func WithProxy(urls ...string) Option {
	return func(f *Fetcher) {
		f.proxies = append(f.proxies, urls...)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
		if len(f.proxies) > 0 {
			f.client.Transport = &http.Transport{Proxy: f.proxy}
		}
	}

	return f
}

func (f *Fetcher) proxy(*http.Request) (*url.URL, error) {
	raw := f.proxies[rand.IntN(len(f.proxies))]
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
	}
	return u, nil
}

// Fetch retrieves the page at url. Error statuses (4xx, 5xx) fail; any
// other non-200 status or an empty body yields an empty page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &worldart.StatusError{StatusCode: resp.StatusCode, URL: url}
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", nil
	}

	decoded, err := decoderFor(body, resp.Header.Get("Content-Type")).Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}

	return stripNoise(decoded)
}

// stripNoise parses the page and renders it back without noise blocks.
func stripNoise(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	doc.Find(noiseSelector).Remove()
	return doc.Html()
}

// decoderFor picks the page encoding from the BOM, the Content-Type header
// or a meta tag. Pages that declare nothing and are not valid UTF-8 are
// read as windows-1251, the catalog's native encoding.
func decoderFor(body []byte, contentType string) *encoding.Decoder {
	e, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == "windows-1252" {
		e = charmap.Windows1251
	}
	return e.NewDecoder()
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
