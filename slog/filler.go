package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/worldart"
)

var (
	_ worldart.Filler         = (*LoggingFiller)(nil)
	_ worldart.FrameHarvester = (*LoggingFrameHarvester)(nil)
)

// LoggingFiller wraps a Filler with logging.
type LoggingFiller struct {
	next   worldart.Filler
	logger *slog.Logger
}

// NewLoggingFiller creates a new LoggingFiller.
func NewLoggingFiller(next worldart.Filler, logger *slog.Logger) *LoggingFiller {
	return &LoggingFiller{next: next, logger: logger}
}

// Fill delegates to the wrapped filler and logs the outcome.
// A rejected request is logged with rejected=true.
func (f *LoggingFiller) Fill(ctx context.Context, req worldart.FillRequest) (rec *worldart.Record, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"frames", req.Frames,
			"duration", time.Since(begin),
		}
		if rec != nil {
			attrs = append(attrs, "name", rec.Name, "framesStored", len(rec.Frames))
		} else if err == nil {
			attrs = append(attrs, "rejected", true)
		}
		attrs = append(attrs, "err", err)
		f.logger.Info("fill", attrs...)
	}(time.Now())
	return f.next.Fill(ctx, req)
}

// LoggingFrameHarvester wraps a FrameHarvester with logging.
type LoggingFrameHarvester struct {
	next   worldart.FrameHarvester
	logger *slog.Logger
}

// NewLoggingFrameHarvester creates a new LoggingFrameHarvester.
func NewLoggingFrameHarvester(next worldart.FrameHarvester, logger *slog.Logger) *LoggingFrameHarvester {
	return &LoggingFrameHarvester{next: next, logger: logger}
}

// Frames delegates to the wrapped harvester and logs the number of frames stored.
func (h *LoggingFrameHarvester) Frames(ctx context.Context, id int, d worldart.Dialect) (refs []string, err error) {
	defer func(begin time.Time) {
		h.logger.Info("frames",
			"id", id,
			"dialect", string(d),
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Frames(ctx, id, d)
}
