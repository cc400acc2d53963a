// Package slog provides logging decorators for the pipeline's
// capabilities. Each decorator wraps an implementation and records the
// operation, its duration and its outcome.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/osokin/leadscout"
)

// Ensure LoggingSearcher implements leadscout.Searcher.
var _ leadscout.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with operation logging.
type LoggingSearcher struct {
	next   leadscout.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next leadscout.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
