package pipeline

import (
	"context"
	"time"

	"github.com/osokin/leadscout"
)

// LogFunc is the signature for a logging function used by retry helpers.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for transient extraction
// service errors: 4s, 8s, 16s (four attempts total).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{4 * time.Second, 8 * time.Second, 16 * time.Second}
}

// Retryable reports whether an error is worth retrying. Only transient
// service unavailability qualifies; malformed input or responses never
// resolve on their own.
func Retryable(err error) bool {
	return leadscout.ErrorCode(err) == leadscout.EUNAVAILABLE
}

// doWithRetryDelays runs fn with bounded backoff. It retries only errors
// accepted by retryable, sleeping delays[i] before attempt i+2. The context
// is checked before every sleep so cancellation is never delayed.
func doWithRetryDelays[T any](
	ctx context.Context,
	fn func(context.Context) (T, error),
	retryable func(error) bool,
	logger LogFunc,
	delays []time.Duration,
) (T, error) {
	maxAttempts := len(delays) + 1

	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		if logger != nil {
			logger("retry (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}

// ExtractWithRetryDelays calls the extraction capability with bounded
// exponential backoff. Transient (EUNAVAILABLE) errors are retried up to
// len(delays) times; anything else fails immediately.
func ExtractWithRetryDelays(
	ctx context.Context,
	extractor leadscout.EntityExtractor,
	prompt string,
	logger LogFunc,
	delays []time.Duration,
) ([]leadscout.Entity, error) {
	return doWithRetryDelays(ctx, func(ctx context.Context) ([]leadscout.Entity, error) {
		return extractor.Extract(ctx, prompt)
	}, Retryable, logger, delays)
}

// ExtractWithRetry is ExtractWithRetryDelays with DefaultRetryDelays.
func ExtractWithRetry(ctx context.Context, extractor leadscout.EntityExtractor, prompt string, logger LogFunc) ([]leadscout.Entity, error) {
	return ExtractWithRetryDelays(ctx, extractor, prompt, logger, DefaultRetryDelays())
}
