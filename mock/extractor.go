package mock

import "github.com/osokin/leadscout"

var _ leadscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of leadscout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*leadscout.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*leadscout.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ leadscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of leadscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
