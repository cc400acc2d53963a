package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/osokin/leadscout"
	"github.com/osokin/leadscout/fs"
	"github.com/osokin/leadscout/gemini"
	"github.com/osokin/leadscout/google"
	leadhttp "github.com/osokin/leadscout/http"
	"github.com/osokin/leadscout/htmltomarkdown"
	"github.com/osokin/leadscout/jina"
	"github.com/osokin/leadscout/pipeline"
	leadslog "github.com/osokin/leadscout/slog"
	"github.com/osokin/leadscout/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// OutDir is where CSV result files are written.
	OutDir string

	// PromptDir is where prompt templates are stored.
	PromptDir string

	// BaseURL is the prefix for download handles.
	BaseURL string

	// AccessToken gates runs when non-empty.
	AccessToken string

	// Model overrides the language model. Empty selects the default.
	Model string
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	return &Main{
		OutDir:      envOr("LEADSCOUT_OUT", defaultDataDir("results")),
		PromptDir:   envOr("LEADSCOUT_PROMPTS", defaultDataDir("prompts")),
		BaseURL:     envOr("LEADSCOUT_BASE_URL", "file://"+defaultDataDir("results")),
		AccessToken: os.Getenv("LEADSCOUT_TOKEN"),
		Model:       os.Getenv("LEADSCOUT_MODEL"),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leadscout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leadscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "prompt" || cmd == "run" {
		prompts := fs.NewPrompts(m.PromptDir)
		if err := prompts.SeedDefaults(defaultPrompts); err != nil {
			return fmt.Errorf("failed to seed prompt defaults in %q: %w", m.PromptDir, err)
		}
		deps.Prompts = fs.NewCachedPrompts(prompts)
	}

	if cmd == "run" {
		driver, err := m.buildDriver(ctx, cli, deps.Prompts, stderr)
		if err != nil {
			return err
		}
		deps.Driver = driver
	}

	return kongCtx.Run(deps)
}

// buildDriver wires the full pipeline for the run command.
func (m *Main) buildDriver(ctx context.Context, cli *CLI, prompts leadscout.PromptService, stderr io.Writer) (*pipeline.Driver, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	var reader leadscout.PageReader
	if cli.Run.Remote {
		reader = jina.NewReader(jina.WithAPIKey(os.Getenv("JINA_API_KEY")))
	} else {
		reader = &pipeline.HTMLReader{
			Fetcher:   leadhttp.NewFetcher(),
			Extractor: trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Limiter:   pipeline.NewDomainLimiter(1.0),
			Log:       logger.Warn,
		}
	}

	return &pipeline.Driver{
		Searcher:  leadslog.NewLoggingSearcher(google.NewSearcher(), logger),
		Reader:    leadslog.NewLoggingReader(reader, logger),
		Extractor: leadslog.NewLoggingExtractor(gemini.NewExtractor(client, m.Model), logger),
		Asker:     leadslog.NewLoggingAsker(gemini.NewAsker(client, m.Model), logger),
		Prompts:   prompts,
		Sinks: func() (leadscout.Sink, error) {
			return fs.NewCSVSink(m.OutDir, m.BaseURL)
		},
		AccessToken: m.AccessToken,
		Logger:      logger,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sub
	}
	return filepath.Join(home, ".leadscout", sub)
}

// defaultPrompts are seeded into the prompt store on first use and are
// recoverable through "prompt reset".
var defaultPrompts = map[string]string{
	leadscout.PromptExtraction: `You will be given a fragment of a web page. Find every person mentioned
in it by name. Return each person's full name exactly as written in the
text. If no people are mentioned, return an empty list.

Text:

{input}`,
	leadscout.PromptCompany: `Based on the text below, which company does {person} work for?
Answer with the company name only. If the text does not say, answer
with a single dash.

Text:

{context}`,
	leadscout.PromptPosition: `Based on the text below, what is {person}'s job title?
Answer with the title only. If the text does not say, answer with
a single dash.

Text:

{context}`,
}
