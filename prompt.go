package leadscout

import "strings"

// Names of the prompt templates the pipeline reads from its PromptService.
const (
	// PromptExtraction is the entity extraction prompt. The stored
	// template must contain the {input} placeholder for the text batch.
	PromptExtraction = "extraction"

	// PromptCompany and PromptPosition are the enrichment question
	// prompts. Their templates use {person} and {context}.
	PromptCompany  = "company"
	PromptPosition = "position"
)

// PromptService provides read/update access to named prompt templates.
type PromptService interface {
	// Get returns the template text for a named prompt.
	// Returns ENOTFOUND if the prompt does not exist.
	Get(name string) (string, error)

	// Update replaces the template text for a named prompt and returns
	// the stored text.
	Update(name, text string) (string, error)

	// Reset restores a named prompt from its default and returns the
	// restored text. Returns ENOTFOUND if no default exists.
	Reset(name string) (string, error)
}

// CompileTemplate substitutes {name}-style placeholders in a prompt
// template. Placeholders without a matching variable are left untouched.
func CompileTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
