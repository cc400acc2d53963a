package mock

import (
	"context"

	"github.com/osokin/leadscout"
)

var _ leadscout.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of leadscout.PageReader.
type PageReader struct {
	ReadFn func(ctx context.Context, url string) (string, error)
}

func (r *PageReader) Read(ctx context.Context, url string) (string, error) {
	return r.ReadFn(ctx, url)
}
