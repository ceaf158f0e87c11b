package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/worldart"
)

var _ worldart.ImageDownloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps an ImageDownloader with debug logging.
type LoggingDownloader struct {
	next   worldart.ImageDownloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next worldart.ImageDownloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Store delegates to the wrapped downloader. Successful stores are logged at
// debug level, failures as warnings.
func (d *LoggingDownloader) Store(ctx context.Context, remoteURL, key string) (ref string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		d.logger.Log(ctx, level, "store image",
			"url", remoteURL,
			"key", key,
			"ref", ref,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Store(ctx, remoteURL, key)
}
