package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/worldart"
)

var _ worldart.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   worldart.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next worldart.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the number of candidates.
func (s *LoggingSearcher) Search(ctx context.Context, req worldart.SearchRequest) (cs []worldart.Candidate, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"name", req.Name,
			"sector", req.Sector,
			"count", len(cs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, req)
}
