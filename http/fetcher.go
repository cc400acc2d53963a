// Package http provides an HTTP-based implementation of leadscout.Fetcher
// for fetching raw page HTML. It does not execute JavaScript; pages that
// render their content client-side come back empty and extraction yields
// nothing for them.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/osokin/leadscout"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the client. Some publishers block the default Go
// agent outright.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Ensure Fetcher implements leadscout.Fetcher at compile time.
var _ leadscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Status codes are
// mapped to application codes so the caller's retry policy can tell a
// throttled or flaky host from a page that is simply gone.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "invalid page URL %q", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "fetch %s: %s", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", leadscout.Errorf(leadscout.ENOTFOUND, "page not found: %s", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", leadscout.Errorf(leadscout.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "read %s: %s", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}
