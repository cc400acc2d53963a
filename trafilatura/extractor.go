// Package trafilatura extracts the main content from raw article HTML,
// dropping navigation, ads and boilerplate. People mentioned in chrome
// (author bylines aside) are noise for name extraction, so the pipeline
// runs on the article body only.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/osokin/leadscout"
	"golang.org/x/net/html"
)

// Ensure Extractor implements leadscout.Extractor at compile time.
var _ leadscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main content out of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and its main content as HTML. Pages
// where no main content can be located yield an empty ContentHTML rather
// than an error; the fallback heuristics make that rare.
func (e *Extractor) Extract(rawHTML string) (*leadscout.ExtractResult, error) {
	if rawHTML == "" {
		return nil, leadscout.Errorf(leadscout.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "extract main content: %s", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &leadscout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
