package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body><div id="search">
<a href="/url?q=https://rbc.ru/a&sa=U">Result A</a>
<a href="/url?q=https://rbc.ru/a&sa=U">Result A again</a>
<a href="https://cfo-russia.ru/b">Result B</a>
<a href="https://support.google.com/websearch">Help</a>
<a href="/preferences">Settings</a>
<a href="/url?q=https://vedomosti.ru/c&sa=U">Result C</a>
</div></body></html>`

func newSearcher(t *testing.T, handler http.HandlerFunc) *google.Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return google.NewSearcher(google.WithBaseURL(srv.URL), google.WithPause(time.Millisecond))
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("extracts result URLs in page order without duplicates", func(t *testing.T) {
		t.Parallel()

		s := newSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, `"Мосстрой" AND ("Гендир")`, r.URL.Query().Get("q"))
			w.Write([]byte(resultsPage))
		})

		urls, err := s.Search(context.Background(), `"Мосстрой" AND ("Гендир")`, 10)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://rbc.ru/a",
			"https://cfo-russia.ru/b",
			"https://vedomosti.ru/c",
		}, urls)
	})

	t.Run("honors the limit", func(t *testing.T) {
		t.Parallel()

		s := newSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(resultsPage))
		})

		urls, err := s.Search(context.Background(), "query", 2)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("no results yields an empty slice and no error", func(t *testing.T) {
		t.Parallel()

		s := newSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>Your search did not match any documents.</p></body></html>"))
		})

		urls, err := s.Search(context.Background(), "query", 10)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("reports throttling as unavailable", func(t *testing.T) {
		t.Parallel()

		s := newSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := s.Search(context.Background(), "query", 10)

		require.Error(t, err)
		assert.Equal(t, leadscout.EUNAVAILABLE, leadscout.ErrorCode(err))
	})

	t.Run("sends a browser user agent", func(t *testing.T) {
		t.Parallel()

		s := newSearcher(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
			w.Write([]byte(resultsPage))
		})

		_, err := s.Search(context.Background(), "query", 10)

		require.NoError(t, err)
	})

	t.Run("spaces out consecutive searches", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(resultsPage))
		}))
		t.Cleanup(srv.Close)
		s := google.NewSearcher(google.WithBaseURL(srv.URL), google.WithPause(100*time.Millisecond))

		_, err := s.Search(context.Background(), "query", 10)
		require.NoError(t, err)

		start := time.Now()
		_, err = s.Search(context.Background(), "query", 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}
