// Package slog provides logging decorators for the catalog services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/worldart"
)

// Ensure LoggingFetcher implements worldart.Fetcher.
var _ worldart.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs one line per page. Failures are
// logged at warn level with the HTTP status when the server sent one.
type LoggingFetcher struct {
	next   worldart.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next worldart.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		var statusErr *worldart.StatusError
		switch {
		case errors.As(err, &statusErr):
			attrs = append(attrs, "status", statusErr.StatusCode)
		case err == nil && html == "":
			attrs = append(attrs, "empty", true)
		}
		if err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, "err", err)
		}
		f.logger.Log(ctx, level, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
