package main

import (
	"fmt"

	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/pipeline"
)

// Run executes the run command. Rows stream to the terminal as they are
// found; the CSV file accumulates them durably in parallel, so an
// interrupted run still leaves a usable file behind.
func (c *RunCmd) Run(deps *Dependencies) error {
	mode := leadscout.ModeParser
	if c.Researcher {
		mode = leadscout.ModeResearcher
	}

	req := leadscout.RunRequest{
		Companies:     c.Companies,
		Positions:     c.Positions,
		Sites:         c.Sites,
		ExcludeSites:  c.ExcludeSites,
		QueryTemplate: c.Template,
		Mode:          mode,
		MaxLeads:      c.MaxLeads,
		MaxSites:      c.MaxSites,
		URLLimit:      c.URLLimit,
		AccessToken:   c.AccessToken,
	}

	res, err := deps.Driver.Run(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Writing to %s\n", res.DownloadURL)

	count := 0
	for row := range res.Rows {
		count++
		fmt.Fprintf(deps.Stdout, "  %s | %s | %s | %s\n", row.Name, row.Position, row.InferredCompany, row.OriginalURL)
	}
	if err := res.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d leads (%s)\n", count, statusText(res.Status()))
	return nil
}

func statusText(s pipeline.Status) string {
	switch s {
	case pipeline.StatusCapped:
		return "stopped at cap"
	case pipeline.StatusExhausted:
		return "all queries processed"
	default:
		return string(s)
	}
}
