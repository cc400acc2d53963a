package gemini

import (
	"context"
	"encoding/json"

	"github.com/osokin/leadscout"
	"google.golang.org/genai"
)

// Ensure Extractor implements leadscout.EntityExtractor at compile time.
var _ leadscout.EntityExtractor = (*Extractor)(nil)

// Extractor finds person names in a text batch using structured output.
// The model is constrained to a JSON array schema, so responses parse
// into entities without prose cleanup.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates an Extractor on the given client. An empty model
// selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// extractionSchema constrains responses to [{"name": "..."}].
var extractionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString},
		},
		Required: []string{"name"},
	},
}

// Extract sends the compiled extraction prompt and returns one entity per
// person name the model found. An empty list is a valid answer.
func (e *Extractor) Extract(ctx context.Context, prompt string) ([]leadscout.Entity, error) {
	if prompt == "" {
		return nil, leadscout.Errorf(leadscout.EINVALID, "prompt required")
	}

	temp := float32(0)
	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      &temp,
			ResponseMIMEType: "application/json",
			ResponseSchema:   extractionSchema,
		},
	)
	if err != nil {
		return nil, mapError(err)
	}
	if result == nil {
		return nil, leadscout.Errorf(leadscout.EINTERNAL, "model returned nil result")
	}

	return ParseEntities(result.Text())
}

// ParseEntities decodes a structured extraction response. Items with an
// empty name are dropped.
func ParseEntities(text string) ([]leadscout.Entity, error) {
	var items []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "malformed extraction response: %s", err)
	}

	entities := make([]leadscout.Entity, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		entities = append(entities, leadscout.Entity{Name: item.Name})
	}
	return entities, nil
}
