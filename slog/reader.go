package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/osokin/leadscout"
)

// Ensure LoggingReader implements leadscout.PageReader.
var _ leadscout.PageReader = (*LoggingReader)(nil)

// LoggingReader wraps a PageReader with operation logging.
type LoggingReader struct {
	next   leadscout.PageReader
	logger *slog.Logger
}

// NewLoggingReader creates a new LoggingReader.
func NewLoggingReader(next leadscout.PageReader, logger *slog.Logger) *LoggingReader {
	return &LoggingReader{next: next, logger: logger}
}

// Read delegates to the wrapped reader and logs the operation.
func (r *LoggingReader) Read(ctx context.Context, url string) (text string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("page read",
			"url", url,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Read(ctx, url)
}
