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

func TestExtractWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns entities on first success", func(t *testing.T) {
		t.Parallel()

		var calls int
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			calls++
			return []leadscout.Entity{{Name: "Иван"}}, nil
		}}

		got, err := pipeline.ExtractWithRetryDelays(context.Background(), extractor, "prompt", nil, []time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors until success", func(t *testing.T) {
		t.Parallel()

		var calls int
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			calls++
			if calls < 3 {
				return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "model loading")
			}
			return []leadscout.Entity{{Name: "Иван"}}, nil
		}}

		got, err := pipeline.ExtractWithRetryDelays(context.Background(), extractor, "prompt", nil, []time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after exhausting delays", func(t *testing.T) {
		t.Parallel()

		var calls int
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			calls++
			return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "model loading")
		}}

		_, err := pipeline.ExtractWithRetryDelays(context.Background(), extractor, "prompt", nil, []time.Duration{0, 0, 0})

		require.Error(t, err)
		assert.Equal(t, leadscout.EUNAVAILABLE, leadscout.ErrorCode(err))
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry malformed responses", func(t *testing.T) {
		t.Parallel()

		var calls int
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			calls++
			return nil, leadscout.Errorf(leadscout.EINVALID, "not JSON")
		}}

		_, err := pipeline.ExtractWithRetryDelays(context.Background(), extractor, "prompt", nil, []time.Duration{0, 0, 0})

		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("logs each retry attempt", func(t *testing.T) {
		t.Parallel()

		var logged int
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "model loading")
		}}

		_, err := pipeline.ExtractWithRetryDelays(context.Background(), extractor, "prompt", func(string, ...any) {
			logged++
		}, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 2, logged)
	})

	t.Run("respects context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		extractor := &mock.EntityExtractor{ExtractFn: func(_ context.Context, _ string) ([]leadscout.Entity, error) {
			cancel()
			return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "model loading")
		}}

		_, err := pipeline.ExtractWithRetryDelays(ctx, extractor, "prompt", nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	delays := pipeline.DefaultRetryDelays()

	require.Len(t, delays, 3)
	assert.Equal(t, 4*time.Second, delays[0])
	assert.Equal(t, 16*time.Second, delays[2])
}
