package leadscout

import "context"

// DiscoveredPage is one search result URL paired with the parameters of the
// query that produced it. Pages are not deduplicated across queries.
type DiscoveredPage struct {
	URL    string
	Params QueryParams
}

// PageReader retrieves normalized plain text for a URL. Expected failure
// modes (the remote extraction service reporting a structured error, bad
// upstream pages) are returned as errors carrying an application code so
// the pipeline can turn them into visible error rows instead of aborting.
type PageReader interface {
	Read(ctx context.Context, url string) (string, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page body. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
