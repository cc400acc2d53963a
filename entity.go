package leadscout

import "context"

// Entity is one person extracted from a page. Name comes from the
// extraction capability; Source is the verbatim text batch the name was
// found in, kept for audit and as enrichment context. Company and Position
// start empty and are filled in by enrichment stages.
type Entity struct {
	Name   string
	Source string
	Batch  int

	// Derived attributes, accumulated by enrichment stages.
	Company  string
	Position string
}

// EntityExtractor finds people mentioned in a text batch. The prompt is
// fully compiled by the caller; the extractor only runs it. A temporarily
// unavailable service returns an EUNAVAILABLE error (retryable); a response
// that cannot be parsed returns EINVALID (not retryable).
type EntityExtractor interface {
	Extract(ctx context.Context, prompt string) ([]Entity, error)
}

// Asker answers a single free-text question, used by enrichment stages to
// infer one attribute per call (employer, job title).
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}
