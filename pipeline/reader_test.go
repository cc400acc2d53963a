package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/mock"
	"github.com/osokin/leadscout/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTMLReader() *pipeline.HTMLReader {
	return &pipeline.HTMLReader{
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			return "<html><body><article>Иван Петров</article></body></html>", nil
		}},
		Extractor: &mock.Extractor{ExtractFn: func(html string) (*leadscout.ExtractResult, error) {
			return &leadscout.ExtractResult{ContentHTML: "<article>Иван Петров</article>"}, nil
		}},
		Converter: &mock.Converter{ConvertFn: func(html string) (string, error) {
			return "Иван Петров", nil
		}},
		RetryDelays: []time.Duration{0},
	}
}

func TestHTMLReader_Read(t *testing.T) {
	t.Parallel()

	t.Run("chains fetch extraction and conversion", func(t *testing.T) {
		t.Parallel()

		r := newHTMLReader()

		text, err := r.Read(context.Background(), "https://rbc.ru/a")

		require.NoError(t, err)
		assert.Equal(t, "Иван Петров", text)
	})

	t.Run("waits on the limiter per host", func(t *testing.T) {
		t.Parallel()

		var domains []string
		r := newHTMLReader()
		r.Limiter = limiterFunc(func(_ context.Context, domain string) error {
			domains = append(domains, domain)
			return nil
		})

		_, err := r.Read(context.Background(), "https://rbc.ru/news/article")

		require.NoError(t, err)
		assert.Equal(t, []string{"rbc.ru"}, domains)
	})

	t.Run("retries transient fetch failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := newHTMLReader()
		r.Fetcher = &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 2 {
				return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "status 429")
			}
			return "<html></html>", nil
		}}

		_, err := r.Read(context.Background(), "https://rbc.ru/a")

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("reports exhausted fetch retries as unavailable", func(t *testing.T) {
		t.Parallel()

		r := newHTMLReader()
		r.Fetcher = &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "status 503")
		}}

		_, err := r.Read(context.Background(), "https://rbc.ru/a")

		require.Error(t, err)
		assert.Equal(t, leadscout.EUNAVAILABLE, leadscout.ErrorCode(err))
	})

	t.Run("propagates context cancellation unwrapped", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		r := newHTMLReader()
		r.Fetcher = &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			cancel()
			return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "status 503")
		}}

		_, err := r.Read(ctx, "https://rbc.ru/a")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects unparseable URLs", func(t *testing.T) {
		t.Parallel()

		r := newHTMLReader()

		_, err := r.Read(context.Background(), "https://rbc.ru/a\x7f%zz")

		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
	})

	t.Run("reports extraction failures as invalid pages", func(t *testing.T) {
		t.Parallel()

		r := newHTMLReader()
		r.Extractor = &mock.Extractor{ExtractFn: func(string) (*leadscout.ExtractResult, error) {
			return nil, leadscout.Errorf(leadscout.EINVALID, "no main content")
		}}

		_, err := r.Read(context.Background(), "https://rbc.ru/a")

		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
	})

	t.Run("reports conversion failures as invalid pages", func(t *testing.T) {
		t.Parallel()

		r := newHTMLReader()
		r.Converter = &mock.Converter{ConvertFn: func(string) (string, error) {
			return "", leadscout.Errorf(leadscout.EINVALID, "malformed markup")
		}}

		_, err := r.Read(context.Background(), "https://rbc.ru/a")

		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
	})
}

type limiterFunc func(ctx context.Context, domain string) error

func (f limiterFunc) Wait(ctx context.Context, domain string) error { return f(ctx, domain) }
