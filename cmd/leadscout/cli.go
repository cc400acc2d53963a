package main

import (
	"context"
	"io"

	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Driver  *pipeline.Driver
	Prompts leadscout.PromptService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Search for pages, extract people and write leads to a CSV file"`
	Queries QueriesCmd `cmd:"" help:"Preview the search queries a template compiles to"`
	Prompt  PromptCmd  `cmd:"" help:"Inspect or edit the prompt templates"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Companies []string `arg:"" help:"Company names to search for"`

	Positions    []string `short:"p" help:"Job titles to include in queries (repeatable)"`
	Sites        []string `short:"s" help:"Sites to constrain the search to (repeatable)"`
	ExcludeSites []string `name:"exclude-site" help:"Sites to exclude from results (repeatable)"`
	Template     string   `short:"t" default:"{company} AND {positions} AND {site}" help:"Search query template"`
	Researcher   bool     `help:"Take one lead per page and cap the number of distinct sites"`
	MaxLeads     int      `help:"Stop after this many rows (0 = unbounded)"`
	MaxSites     int      `help:"Researcher mode: stop after this many distinct sites (0 = unbounded)"`
	URLLimit     int      `default:"10" help:"Result URLs requested per query"`
	Remote       bool     `help:"Read pages through the remote reader service instead of fetching locally"`
	AccessToken  string   `env:"LEADSCOUT_TOKEN" help:"Access token, if the pipeline is gated"`
}

// QueriesCmd is the "queries" subcommand.
type QueriesCmd struct {
	Companies []string `arg:"" help:"Company names to compile queries for"`

	Positions    []string `short:"p" help:"Job titles to include in queries (repeatable)"`
	Sites        []string `short:"s" help:"Sites to constrain the search to (repeatable)"`
	ExcludeSites []string `name:"exclude-site" help:"Sites to exclude from results (repeatable)"`
	Template     string   `short:"t" default:"{company} AND {positions} AND {site}" help:"Search query template"`
}

// PromptCmd groups the prompt template subcommands.
type PromptCmd struct {
	Get   PromptGetCmd   `cmd:"" help:"Print the current text of a prompt"`
	Set   PromptSetCmd   `cmd:"" help:"Replace the text of a prompt"`
	Reset PromptResetCmd `cmd:"" help:"Restore a prompt to its default text"`
}

// PromptGetCmd is the "prompt get" subcommand.
type PromptGetCmd struct {
	Name string `arg:"" help:"Prompt name: extraction, company or position"`
}

// PromptSetCmd is the "prompt set" subcommand.
type PromptSetCmd struct {
	Name string `arg:"" help:"Prompt name: extraction, company or position"`
	Text string `arg:"" help:"New prompt text"`
}

// PromptResetCmd is the "prompt reset" subcommand.
type PromptResetCmd struct {
	Name string `arg:"" help:"Prompt name: extraction, company or position"`
}
