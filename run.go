package leadscout

// Mode selects the pipeline's consumption policy.
type Mode string

const (
	// ModeParser exhaustively extracts every lead on every discovered
	// page, bounded by a global lead cap.
	ModeParser Mode = "parser"

	// ModeResearcher stops extracting a page at the first lead found and
	// is bounded by a distinct-site cap. Used to sample site coverage
	// cheaply.
	ModeResearcher Mode = "researcher"
)

// RunRequest describes one pipeline run.
type RunRequest struct {
	Companies    []string
	Positions    []string
	Sites        []string
	ExcludeSites []string

	// QueryTemplate is the search query template; see NewQuerySet for
	// the placeholder rules.
	QueryTemplate string

	Mode Mode

	// MaxLeads caps emitted rows in parser mode. Zero means no cap.
	MaxLeads int

	// MaxSites caps distinct sites in researcher mode. Zero means no cap.
	MaxSites int

	// URLLimit bounds search results taken per query. Zero means the
	// searcher's default.
	URLLimit int

	// AccessToken is compared against the configured secret before any
	// work starts.
	AccessToken string

	// CompanyPrompt and PositionPrompt override the stored enrichment
	// prompt templates for this run when non-empty.
	CompanyPrompt  string
	PositionPrompt string
}

// Validate checks the request fields that do not require compiling the
// query template.
func (r *RunRequest) Validate() error {
	if len(r.Companies) == 0 {
		return Errorf(EINVALID, "at least one company required")
	}
	if r.Mode != ModeParser && r.Mode != ModeResearcher {
		return Errorf(EINVALID, "unknown mode %q", r.Mode)
	}
	return nil
}
