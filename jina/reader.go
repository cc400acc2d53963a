// Package jina provides a remote reader-service implementation of
// leadscout.PageReader. The service fetches a page server-side and
// returns its readable text, so no local HTML processing is needed.
package jina

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/osokin/leadscout"
)

// DefaultBaseURL is the public reader service endpoint.
const DefaultBaseURL = "https://r.jina.ai/"

// DefaultTimeout is the default timeout for reader requests. Remote
// rendering is slow for heavy pages, so it is generous.
const DefaultTimeout = 60 * time.Second

// Ensure Reader implements leadscout.PageReader at compile time.
var _ leadscout.PageReader = (*Reader)(nil)

// Reader retrieves page text through a reader service. The target URL is
// appended to the service base URL and the response body is the page's
// readable text.
type Reader struct {
	client  *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
}

// Option configures a Reader.
type Option func(*Reader)

// WithBaseURL overrides the reader service endpoint. Used in tests and
// for self-hosted deployments.
func WithBaseURL(u string) Option {
	return func(r *Reader) {
		r.baseURL = u
	}
}

// WithAPIKey sets the bearer token sent with each request. Without a key
// the public endpoint applies a much lower rate limit.
func WithAPIKey(key string) Option {
	return func(r *Reader) {
		r.apiKey = key
	}
}

// WithTimeout sets the timeout for reader requests.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Reader) {
		r.timeout = d
	}
}

// NewReader creates a reader-service backed PageReader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// errorPayload is the shape of the service's JSON error responses. A
// successful response is plain text, so a body that decodes into this
// shape signals a failure even under HTTP 200.
type errorPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Read returns the readable text of the page at url.
func (r *Reader) Read(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+url, nil)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "invalid page URL %q", url)
	}
	req.Header.Set("X-Return-Format", "text")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "reader request for %s: %s", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "reader response for %s: %s", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "reader returned HTTP %d for %s", resp.StatusCode, url)
	}

	var p errorPayload
	if json.Unmarshal(body, &p) == nil && (p.Name != "" || p.Code != 0) {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "reader error for %s: %s", url, errorText(p))
	}

	return string(body), nil
}

func errorText(p errorPayload) string {
	if p.Message != "" {
		return p.Message
	}
	return p.Name
}
