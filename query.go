package leadscout

import (
	"context"
	"iter"
	"regexp"
	"sort"
	"strings"
)

// Template placeholders accepted by NewQuerySet. A template may use
// {position} or {positions}, never both.
var allowedPlaceholders = map[string]bool{
	"{company}":   true,
	"{site}":      true,
	"{position}":  true,
	"{positions}": true,
}

var placeholderRE = regexp.MustCompile(`\{[^{}]*\}`)

// QueryParams holds the substitution values that produced one query.
// Position carries the rendered position clause: a single quoted position
// when the template uses {position}, or the parenthesized OR-group when it
// uses {positions}.
type QueryParams struct {
	Company  string
	Site     string
	Position string
}

// SearchQuery is one concrete search engine query. Immutable once compiled.
type SearchQuery struct {
	Query  string
	Params QueryParams
}

// Searcher issues a query against an external search capability and returns
// result URLs in the capability's order. A query with no results returns an
// empty slice and a nil error. A limit <= 0 means the implementation's
// default result count.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// QuerySet compiles a query template against company, position and site
// lists into a lazy sequence of concrete search queries.
type QuerySet struct {
	template     string
	companies    []string
	positions    []string
	sites        []string
	excludeSites []string
	plural       bool
	singular     bool
}

// NewQuerySet validates the template and returns a QuerySet. The template's
// placeholder set must be a subset of {company}, {site}, {position},
// {positions}; {position} and {positions} are mutually exclusive. Violations
// return an EINVALID error naming the offending placeholders. No queries are
// produced until All is consumed.
//
// An empty site list compiles as a single query with an empty site clause.
// Hosts in excludeSites are appended to every non-empty site clause as
// negated site filters.
func NewQuerySet(template string, companies, positions, sites, excludeSites []string) (*QuerySet, error) {
	var extra []string
	for _, ph := range placeholderRE.FindAllString(template, -1) {
		if !allowedPlaceholders[ph] {
			extra = append(extra, ph)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, Errorf(EINVALID, "prohibited placeholders in query template: %s", strings.Join(extra, ", "))
	}

	plural := strings.Contains(template, "{positions}")
	singular := strings.Contains(template, "{position}")
	if plural && singular {
		return nil, Errorf(EINVALID, "{position} and {positions} cannot both appear in a query template")
	}

	if len(sites) == 0 {
		sites = []string{""}
	}

	return &QuerySet{
		template:     template,
		companies:    companies,
		positions:    positions,
		sites:        sites,
		excludeSites: excludeSites,
		plural:       plural,
		singular:     singular,
	}, nil
}

// All returns the compiled queries as a lazy, finite, restartable sequence.
// Order is deterministic: companies outer, sites middle, positions inner.
// A {positions} template yields one query per (company, site); a {position}
// template yields one query per (company, site, position).
func (qs *QuerySet) All() iter.Seq[SearchQuery] {
	return func(yield func(SearchQuery) bool) {
		for _, company := range qs.companies {
			for _, site := range qs.sites {
				for _, position := range qs.positionClauses() {
					params := QueryParams{
						Company:  company,
						Site:     site,
						Position: position,
					}
					if !yield(SearchQuery{Query: qs.render(params), Params: params}) {
						return
					}
				}
			}
		}
	}
}

// positionClauses returns the rendered position substitution values. The
// plural form joins every position into one OR-group, so it contributes a
// single query per (company, site); the singular form contributes one query
// per position. A template that uses neither placeholder gets a single
// empty clause so the cross product stays companies x sites.
func (qs *QuerySet) positionClauses() []string {
	switch {
	case qs.plural:
		quoted := make([]string, len(qs.positions))
		for i, p := range qs.positions {
			quoted[i] = `"` + p + `"`
		}
		return []string{"(" + strings.Join(quoted, " OR ") + ")"}
	case qs.singular:
		clauses := make([]string, len(qs.positions))
		for i, p := range qs.positions {
			clauses[i] = `"` + p + `"`
		}
		return clauses
	default:
		return []string{""}
	}
}

func (qs *QuerySet) render(params QueryParams) string {
	r := strings.NewReplacer(
		"{company}", `"`+params.Company+`"`,
		"{site}", qs.siteClause(params.Site),
		"{position}", params.Position,
		"{positions}", params.Position,
	)
	return r.Replace(qs.template)
}

// siteClause renders the site restriction. An empty site means no
// restriction and renders as an empty string, leaving the template's
// surrounding text untouched.
func (qs *QuerySet) siteClause(site string) string {
	if site == "" {
		return ""
	}
	clause := "site:" + site
	for _, ex := range qs.excludeSites {
		clause += " -site:" + ex
	}
	return clause
}
