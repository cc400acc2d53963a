// Package htmltomarkdown converts extracted content HTML into markdown
// text suitable for language model prompts.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/osokin/leadscout"
)

// Ensure Converter implements leadscout.Converter at compile time.
var _ leadscout.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. Tables are converted too; staff
// listings often arrive as tables and their cell text must survive.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", leadscout.Errorf(leadscout.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "convert to markdown: %s", err)
	}

	return result, nil
}
