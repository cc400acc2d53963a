package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/osokin/leadscout"
)

// Ensure LoggingExtractor implements leadscout.EntityExtractor.
var _ leadscout.EntityExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an EntityExtractor with operation logging.
type LoggingExtractor struct {
	next   leadscout.EntityExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next leadscout.EntityExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
// Prompts are not logged; they contain full page text.
func (e *LoggingExtractor) Extract(ctx context.Context, prompt string) (entities []leadscout.Entity, err error) {
	defer func(begin time.Time) {
		e.logger.Info("entity extraction",
			"prompt_chars", len(prompt),
			"count", len(entities),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, prompt)
}

// Ensure LoggingAsker implements leadscout.Asker.
var _ leadscout.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with operation logging.
type LoggingAsker struct {
	next   leadscout.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next leadscout.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, prompt string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("enrichment question",
			"prompt_chars", len(prompt),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, prompt)
}
