package mock

import (
	"context"

	"github.com/osokin/leadscout"
)

var _ leadscout.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of leadscout.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return s.SearchFn(ctx, query, limit)
}
