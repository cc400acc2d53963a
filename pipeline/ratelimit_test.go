package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/osokin/leadscout/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(1.0)

		start := time.Now()
		err := limiter.Wait(context.Background(), "rbc.ru")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("different domains do not block each other", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(0.5)

		require.NoError(t, limiter.Wait(context.Background(), "rbc.ru"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "cfo-russia.ru"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second request to the same domain waits", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(10.0) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "rbc.ru"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "rbc.ru"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns when the context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "rbc.ru"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := limiter.Wait(ctx, "rbc.ru")

		assert.Error(t, err)
	})
}
