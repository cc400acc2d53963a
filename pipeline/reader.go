package pipeline

import (
	"context"
	"net/url"
	"time"

	"github.com/osokin/leadscout"
)

var _ leadscout.PageReader = (*HTMLReader)(nil)

// HTMLReader turns a URL into normalized page text by chaining a raw HTML
// fetch, main-content extraction and markdown conversion. It is the local
// alternative to a remote reader service.
type HTMLReader struct {
	Fetcher   leadscout.Fetcher
	Extractor leadscout.Extractor
	Converter leadscout.Converter

	// Limiter, when set, spaces out fetches per target domain.
	Limiter Limiter

	// RetryDelays override the transport retry backoff. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// Log, when set, receives retry notices.
	Log LogFunc
}

// Read fetches the URL and returns its main content as markdown text.
// Failures are returned with an application code so the caller can treat
// them as per-page data rather than pipeline faults.
func (r *HTMLReader) Read(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "invalid page URL %q", rawURL)
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := doWithRetryDelays(ctx, func(ctx context.Context) (string, error) {
		return r.Fetcher.Fetch(ctx, rawURL)
	}, Retryable, r.Log, delays)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "fetch %s: %s", rawURL, err)
	}

	extracted, err := r.Extractor.Extract(html)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "extract %s: %s", rawURL, err)
	}

	text, err := r.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "convert %s: %s", rawURL, err)
	}

	return text, nil
}
