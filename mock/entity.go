package mock

import (
	"context"

	"github.com/osokin/leadscout"
)

var _ leadscout.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of leadscout.EntityExtractor.
type EntityExtractor struct {
	ExtractFn func(ctx context.Context, prompt string) ([]leadscout.Entity, error)
}

func (e *EntityExtractor) Extract(ctx context.Context, prompt string) ([]leadscout.Entity, error) {
	return e.ExtractFn(ctx, prompt)
}

var _ leadscout.Asker = (*Asker)(nil)

// Asker is a mock implementation of leadscout.Asker.
type Asker struct {
	AskFn func(ctx context.Context, prompt string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, prompt string) (string, error) {
	return a.AskFn(ctx, prompt)
}
