// Package google provides a leadscout.Searcher that scrapes result links
// from the public search results page. There is no official API for this,
// so the implementation parses the HTML and is deliberately conservative
// about request pacing.
package google

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/osokin/leadscout"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public search endpoint.
const DefaultBaseURL = "https://www.google.com/search"

// DefaultLimit is the number of result URLs returned when the caller does
// not specify one.
const DefaultLimit = 10

// DefaultTimeout is the default timeout for search requests.
const DefaultTimeout = 30 * time.Second

// DefaultPause is the minimum spacing between consecutive searches.
// Scraped endpoints throttle aggressively; going faster trades a working
// run for a block.
const DefaultPause = 2 * time.Second

// userAgent is sent with every request. The endpoint serves a scriptable
// HTML page only to browser-like clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Ensure Searcher implements leadscout.Searcher at compile time.
var _ leadscout.Searcher = (*Searcher)(nil)

// Searcher discovers page URLs for a query by scraping the search results
// page. Requests are spaced out with a shared rate limiter.
type Searcher struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	timeout time.Duration
	pause   time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the search endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithTimeout sets the timeout for search requests.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithPause sets the minimum spacing between consecutive searches.
// Defaults to DefaultPause (2s) if not specified.
func WithPause(d time.Duration) Option {
	return func(s *Searcher) {
		s.pause = d
	}
}

// NewSearcher creates a scraping Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		pause:   DefaultPause,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}
	s.limiter = rate.NewLimiter(rate.Every(s.pause), 1)

	return s
}

// Search returns up to limit result URLs for the query, in result order.
// An empty slice with a nil error means the query matched nothing.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("num", strconv.Itoa(limit+2))
	q.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "invalid search query %q", query)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "search request: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "search rate limited (HTTP 429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINTERNAL, "parse search results: %s", err)
	}

	return collectResults(doc, limit), nil
}

// collectResults extracts result URLs from the page. Result anchors come
// in two shapes depending on which page variant is served: redirect links
// of the form /url?q=<target> and plain absolute links.
func collectResults(doc *goquery.Document, limit int) []string {
	results := []string{}
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")

		target := resultTarget(href)
		if target == "" || seen[target] {
			return true
		}
		seen[target] = true
		results = append(results, target)
		return len(results) < limit
	})

	return results
}

func resultTarget(href string) string {
	if strings.HasPrefix(href, "/url?") {
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		href = u.Query().Get("q")
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if strings.Contains(u.Host, "google.") {
		return ""
	}
	return href
}
