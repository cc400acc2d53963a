// Package pipeline composes query compilation, page discovery, content
// reading, entity extraction and enrichment into one lazy, pull-based
// stream of output rows. A single consumer pulls one row at a time; no
// stage runs ahead of the consumer, and rows are persisted in the exact
// order entities are produced.
package pipeline

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/osokin/leadscout"
)

// DefaultBatchSize is the extraction batch size in characters when the
// caller does not set one.
const DefaultBatchSize = 2000

// Status is the terminal state of a run.
type Status string

const (
	// StatusRunning means the row stream has not finished yet.
	StatusRunning Status = "running"

	// StatusCapped means the consumption limit was reached. Terminal,
	// successful.
	StatusCapped Status = "capped"

	// StatusExhausted means upstream discovery produced no more pages.
	// Terminal, successful.
	StatusExhausted Status = "exhausted"

	// StatusDisconnected means the consumer stopped pulling rows.
	StatusDisconnected Status = "disconnected"

	// StatusFailed means the run stopped on a fatal error; see Result.Err.
	StatusFailed Status = "failed"
)

// Driver wires the pipeline stages together and owns the run's counters.
// All capability calls are blocking from the pipeline's point of view;
// callers embedding the driver in an event-driven server should use Stream,
// which offloads the pull loop.
type Driver struct {
	Searcher  leadscout.Searcher
	Reader    leadscout.PageReader
	Extractor leadscout.EntityExtractor
	Asker     leadscout.Asker
	Prompts   leadscout.PromptService

	// Sinks opens the durable store for one run.
	Sinks func() (leadscout.Sink, error)

	// Enrichers, when non-nil, replace the default company+position
	// stages. The slice order is the application order.
	Enrichers []*Enricher

	// AccessToken is the configured secret. Empty disables the check.
	AccessToken string

	// BatchSize is the extraction batch size in characters.
	// Defaults to DefaultBatchSize.
	BatchSize int

	// RetryDelays override the extraction backoff. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// FailOnSearchError makes a search capability failure fatal to the
	// run. The default is to log and continue with the next query.
	FailOnSearchError bool

	Logger *slog.Logger
}

// Result is one started run. Rows is a lazy, finite, single-use sequence;
// consuming it drives the pipeline. The sink is flushed and closed exactly
// once when the sequence finishes, whether it is exhausted, capped, failed
// or abandoned, and DownloadURL stays valid and readable afterwards.
type Result struct {
	RunID       string
	DownloadURL string
	Rows        iter.Seq[leadscout.Row]

	sink    leadscout.Sink
	started bool
	status  Status
	err     error
}

// Status reports the terminal state. Valid once Rows has finished.
func (r *Result) Status() Status { return r.status }

// Err reports the fatal error for StatusFailed runs, nil otherwise.
func (r *Result) Err() error { return r.err }

// Close releases the run's sink without doing any work. It is needed only
// when the caller abandons the run before ranging over Rows; once Rows has
// started, the sequence itself releases the sink on every exit path.
func (r *Result) Close() error {
	if r.started {
		return nil
	}
	r.started = true
	r.status = StatusDisconnected
	return r.sink.Close()
}

// Run validates the request, opens the result sink and returns a started
// run. Authorization and template validation happen here, before any side
// effect: on failure no query is issued and no file is created. The
// returned download handle is stable for the whole run and available
// before the first row.
func (d *Driver) Run(ctx context.Context, req leadscout.RunRequest) (*Result, error) {
	if d.AccessToken != "" && req.AccessToken != d.AccessToken {
		return nil, leadscout.Errorf(leadscout.EUNAUTHORIZED, "access denied")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	qs, err := leadscout.NewQuerySet(req.QueryTemplate, req.Companies, req.Positions, req.Sites, req.ExcludeSites)
	if err != nil {
		return nil, err
	}

	extractTpl, err := d.Prompts.Get(leadscout.PromptExtraction)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(extractTpl, "{input}") {
		return nil, leadscout.Errorf(leadscout.EINVALID, "extraction prompt must contain the {input} placeholder")
	}

	enrichers, err := d.enrichers(req)
	if err != nil {
		return nil, err
	}

	sink, err := d.Sinks()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       uuid.NewString(),
		DownloadURL: sink.DownloadURL(),
		sink:        sink,
		status:      StatusRunning,
	}
	inner := d.stream(ctx, req, qs, extractTpl, enrichers, sink, res)
	// Rows is single use: a second range is a no-op rather than a rerun.
	res.Rows = func(yield func(leadscout.Row) bool) {
		if res.started {
			return
		}
		res.started = true
		inner(yield)
	}
	return res, nil
}

// enrichers returns the stages for this run, honoring per-run prompt
// overrides from the request.
func (d *Driver) enrichers(req leadscout.RunRequest) ([]*Enricher, error) {
	if d.Enrichers != nil {
		return d.Enrichers, nil
	}

	companyTpl := req.CompanyPrompt
	if companyTpl == "" {
		tpl, err := d.Prompts.Get(leadscout.PromptCompany)
		if err != nil {
			return nil, err
		}
		companyTpl = tpl
	}
	positionTpl := req.PositionPrompt
	if positionTpl == "" {
		tpl, err := d.Prompts.Get(leadscout.PromptPosition)
		if err != nil {
			return nil, err
		}
		positionTpl = tpl
	}

	return []*Enricher{
		CompanyEnricher(d.Asker, companyTpl),
		PositionEnricher(d.Asker, positionTpl),
	}, nil
}

// runState tracks one run's consumption counters. Only the driver mutates
// them.
type runState struct {
	mode     leadscout.Mode
	maxLeads int
	maxSites int
	leads    int
	sites    map[string]bool
}

// capped reports whether the consumption limit has been reached after the
// latest emitted row.
func (s *runState) capped() bool {
	return s.mode == leadscout.ModeParser && s.maxLeads > 0 && s.leads >= s.maxLeads
}

// admitSite records a site visit and reports whether the page may be
// processed under the researcher distinct-site cap.
func (s *runState) admitSite(site string) bool {
	if s.mode != leadscout.ModeResearcher || s.maxSites <= 0 {
		return true
	}
	if s.sites[site] {
		return true
	}
	if len(s.sites) >= s.maxSites {
		return false
	}
	s.sites[site] = true
	return true
}

func (d *Driver) stream(
	ctx context.Context,
	req leadscout.RunRequest,
	qs *leadscout.QuerySet,
	extractTpl string,
	enrichers []*Enricher,
	sink leadscout.Sink,
	res *Result,
) iter.Seq[leadscout.Row] {
	return func(yield func(leadscout.Row) bool) {
		logger := d.logger().With("run", res.RunID)
		defer func() {
			if err := sink.Close(); err != nil {
				logger.Warn("sink close", "err", err)
			}
		}()

		state := &runState{
			mode:     req.Mode,
			maxLeads: req.MaxLeads,
			maxSites: req.MaxSites,
			sites:    make(map[string]bool),
		}

		emit := func(row leadscout.Row) bool {
			if err := sink.Persist(row); err != nil {
				res.fail(err)
				return false
			}
			if !yield(row) {
				res.status = StatusDisconnected
				return false
			}
			state.leads++
			if state.capped() {
				res.status = StatusCapped
				return false
			}
			return true
		}

		for query := range qs.All() {
			logger.Info("search", "query", query.Query)

			urls, err := d.Searcher.Search(ctx, query.Query, req.URLLimit)
			if err != nil {
				if ctx.Err() != nil || d.FailOnSearchError {
					res.fail(err)
					return
				}
				logger.Warn("search failed, skipping query", "query", query.Query, "err", err)
				continue
			}
			if len(urls) == 0 {
				logger.Info("no results", "company", query.Params.Company, "site", query.Params.Site)
				continue
			}

			for _, pageURL := range urls {
				page := leadscout.DiscoveredPage{URL: pageURL, Params: query.Params}

				if !state.admitSite(query.Params.Site) {
					res.status = StatusCapped
					return
				}

				if !d.processPage(ctx, page, extractTpl, enrichers, state, logger, emit, res) {
					return
				}
			}
		}

		res.status = StatusExhausted
	}
}

// processPage reads one page and streams its rows through extraction and
// enrichment. It returns false when the run must stop (fatal error, cap,
// consumer gone); per-page and per-item failures keep the run going.
func (d *Driver) processPage(
	ctx context.Context,
	page leadscout.DiscoveredPage,
	extractTpl string,
	enrichers []*Enricher,
	state *runState,
	logger *slog.Logger,
	emit func(leadscout.Row) bool,
	res *Result,
) bool {
	logger.Info("read page", "url", page.URL)

	text, err := d.Reader.Read(ctx, page.URL)
	if err != nil {
		if ctx.Err() != nil {
			res.fail(ctx.Err())
			return false
		}
		// A page that cannot be read becomes a visible error row; the
		// run continues with the next page.
		logger.Warn("page read failed", "url", page.URL, "err", err)
		return emit(leadscout.NewErrorRow(leadscout.ErrorMessage(err), page))
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logf := func(format string, args ...any) {
		logger.Warn("extraction " + fmt.Sprintf(format, args...))
	}

	for batchIdx, batch := range Batches(text, d.batchSize()) {
		prompt := leadscout.CompileTemplate(extractTpl, map[string]string{"input": batch})

		entities, err := ExtractWithRetryDelays(ctx, d.Extractor, prompt, logf, delays)
		if err != nil {
			if ctx.Err() != nil {
				res.fail(ctx.Err())
				return false
			}
			// Batch-level failure after retries: skip the batch,
			// keep the page.
			logger.Warn("extraction failed, skipping batch", "url", page.URL, "batch", batchIdx, "err", err)
			continue
		}

		for _, entity := range entities {
			entity.Source = batch
			entity.Batch = batchIdx

			if ok := d.enrich(ctx, &entity, enrichers, logger, res); !ok {
				if res.status == StatusFailed {
					return false
				}
				continue // entity dropped
			}

			if !emit(leadscout.NewRow(entity, page)) {
				return false
			}

			if state.mode == leadscout.ModeResearcher {
				// Page-level presence established; move on.
				return true
			}
		}
	}

	return true
}

// enrich applies every stage in order. A stage failure drops the entity
// with a warning; only context cancellation is fatal.
func (d *Driver) enrich(ctx context.Context, e *leadscout.Entity, enrichers []*Enricher, logger *slog.Logger, res *Result) bool {
	for _, en := range enrichers {
		if err := en.Enrich(ctx, e); err != nil {
			if ctx.Err() != nil {
				res.fail(ctx.Err())
				return false
			}
			logger.Warn("enrichment failed, dropping entity", "stage", en.Name, "name", e.Name, "err", err)
			return false
		}
	}
	return true
}

func (r *Result) fail(err error) {
	r.status = StatusFailed
	r.err = err
}

func (d *Driver) batchSize() int {
	if d.BatchSize > 0 {
		return d.BatchSize
	}
	return DefaultBatchSize
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
