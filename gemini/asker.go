// Package gemini provides the language model capabilities: extracting
// person names from page text and answering enrichment questions.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/osokin/leadscout"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements leadscout.Asker at compile time.
var _ leadscout.Asker = (*Asker)(nil)

// Asker answers enrichment questions with a single short completion.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates an Asker on the given client. An empty model selects
// DefaultModel.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask sends the prompt and returns the model's answer as plain text.
func (a *Asker) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", leadscout.Errorf(leadscout.EINVALID, "prompt required")
	}

	temp := float32(0)
	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature: &temp,
		},
	)
	if err != nil {
		return "", mapError(err)
	}
	if result == nil {
		return "", leadscout.Errorf(leadscout.EINTERNAL, "model returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// mapError translates transport failures into application error codes so
// the pipeline's retry policy can tell transient errors from permanent
// ones.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429 || apiErr.Code >= 500:
			return leadscout.Errorf(leadscout.EUNAVAILABLE, "model unavailable: %s", apiErr.Message)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return leadscout.Errorf(leadscout.EUNAUTHORIZED, "model access denied: %s", apiErr.Message)
		}
	}
	return err
}
