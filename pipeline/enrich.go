package pipeline

import (
	"context"

	"github.com/osokin/leadscout"
)

// Enricher attaches one derived attribute to an entity by asking the QA
// capability a compiled question. Enrichers compose as an explicit ordered
// list applied by the driver; each one is independent, so the set of
// attached fields is exactly the set of enrichers the caller assembles.
type Enricher struct {
	// Name identifies the enricher in logs.
	Name string

	// Asker answers the compiled question.
	Asker leadscout.Asker

	// Template is the question template; {person} and {context} are
	// substituted per entity.
	Template string

	// Attach writes the answer onto the entity.
	Attach func(e *leadscout.Entity, answer string)
}

// Enrich compiles the question for the entity, asks it, and attaches the
// answer. The entity is modified in place only on success.
func (en *Enricher) Enrich(ctx context.Context, e *leadscout.Entity) error {
	prompt := leadscout.CompileTemplate(en.Template, map[string]string{
		"person":  e.Name,
		"context": e.Source,
	})
	answer, err := en.Asker.Ask(ctx, prompt)
	if err != nil {
		return err
	}
	en.Attach(e, answer)
	return nil
}

// CompanyEnricher infers the entity's employer.
func CompanyEnricher(asker leadscout.Asker, template string) *Enricher {
	return &Enricher{
		Name:     "company",
		Asker:    asker,
		Template: template,
		Attach:   func(e *leadscout.Entity, answer string) { e.Company = answer },
	}
}

// PositionEnricher infers the entity's job title.
func PositionEnricher(asker leadscout.Asker, template string) *Enricher {
	return &Enricher{
		Name:     "position",
		Asker:    asker,
		Template: template,
		Attach:   func(e *leadscout.Entity, answer string) { e.Position = answer },
	}
}
