package worldart

import (
	"context"
	"fmt"
	"net/http"
)

// Fetcher retrieves catalog pages as UTF-8 HTML.
type Fetcher interface {
	// Fetch requests the URL and returns its decoded HTML with noise blocks
	// removed. An empty string with a nil error means the page had no
	// usable content (non-200 status or empty body).
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// StatusError is returned by a Fetcher when the server answers with an
// error status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the same request may succeed later: server
// errors, request timeouts and rate limiting.
func (e *StatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= http.StatusInternalServerError
}
