package leadscout

import "strings"

// Placeholder fills any row field an upstream stage could not produce, so
// the persisted CSV is always rectangular.
const Placeholder = "-"

// Header is the fixed CSV header, in column order.
func Header() []string {
	return []string{"name", "position", "searched_company", "inferenced_company", "original_url", "source"}
}

// Row is one lead in the output. Every field is always populated; see
// Placeholder.
type Row struct {
	Name            string
	Position        string
	SearchedCompany string
	InferredCompany string
	OriginalURL     string
	Source          string
}

// NewRow assembles an output row from an extracted entity and its
// originating page. Missing optional fields are filled with Placeholder.
func NewRow(e Entity, page DiscoveredPage) Row {
	return Row{
		Name:            orPlaceholder(e.Name),
		Position:        orPlaceholder(e.Position),
		SearchedCompany: orPlaceholder(page.Params.Company),
		InferredCompany: orPlaceholder(e.Company),
		OriginalURL:     orPlaceholder(page.URL),
		Source:          orPlaceholder(flatten(e.Source)),
	}
}

// NewErrorRow builds the synthetic row emitted when a page's content could
// not be fetched: the failure message lands in the name column so it is
// visible in the output, and every extracted field is Placeholder.
func NewErrorRow(message string, page DiscoveredPage) Row {
	return Row{
		Name:            orPlaceholder(message),
		Position:        Placeholder,
		SearchedCompany: orPlaceholder(page.Params.Company),
		InferredCompany: Placeholder,
		OriginalURL:     orPlaceholder(page.URL),
		Source:          Placeholder,
	}
}

// Record returns the row's fields in Header order.
func (r Row) Record() []string {
	return []string{r.Name, r.Position, r.SearchedCompany, r.InferredCompany, r.OriginalURL, r.Source}
}

// Sink persists rows durably as they are produced.
type Sink interface {
	// DownloadURL returns the stable retrieval handle for this sink's
	// output. Valid immediately after construction, before any row
	// exists, and after Close.
	DownloadURL() string

	// Persist appends one row and flushes it to durable storage.
	Persist(row Row) error

	// Close flushes and releases the underlying store. Safe to call more
	// than once; only the first call has an effect.
	Close() error
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// flatten collapses line and tab breaks so a multi-line source snippet
// stays on one CSV row when read by naive consumers.
func flatten(s string) string {
	r := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
	return strings.TrimSpace(r.Replace(s))
}
