package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"pdfxtract/constants"
	"pdfxtract/internal/batch"
	"pdfxtract/internal/common"
	"pdfxtract/internal/extract"
	"pdfxtract/internal/history"
	"pdfxtract/internal/llm"
	"pdfxtract/internal/pdftext"
	"pdfxtract/internal/sink"
	"pdfxtract/internal/template"
)

const banner = `
            _  __      _                  _
  _ __   __| |/ _|_  _| |_ _ __ __ _  ___| |_
 | '_ \ / _' | |_\ \/ / __| '__/ _' |/ __| __|
 | |_) | (_| |  _|>  <| |_| | | (_| | (__| |_
 | .__/ \__,_|_| /_/\_\\__|_|  \__,_|\___|\__|
 |_|        PDF -> structured data
`

// knownModels is the shortlist shown by the models command; any model ID is
// accepted, these are just the documented ones.
var knownModels = []struct {
	ID       string
	Speed    string
	Accuracy string
	Cost     string
}{
	{"gemini-2.5-flash", "fast", "good", "low"},
	{"gemini-2.5-pro", "slow", "best", "high"},
	{"gemini-2.0-flash", "fastest", "fair", "lowest"},
	{"gpt-4o", "medium", "best", "high"},
	{"gpt-4o-mini", "fast", "good", "low"},
	{"gpt-4.1", "medium", "best", "high"},
}

// setup loads .env, environment config, and the optional config file, and
// builds the logger. Every command starts here.
func setup(c *cli.Context) (*common.Config, *slog.Logger, error) {
	_ = godotenv.Load() // absent .env is fine

	cfg := common.LoadConfig()
	if path := c.String("config"); path != "" {
		if err := cfg.MergeConfigFile(path); err != nil {
			return nil, nil, err
		}
	}

	level := slog.LevelInfo
	if c.Bool("verbose") || cfg.Extraction.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// applyFlags overlays command-line flags onto the merged config. Flags win
// over both the config file and the environment.
func applyFlags(c *cli.Context, cfg *common.Config) {
	if c.IsSet("template") {
		cfg.Extraction.Template = c.String("template")
	}
	if c.IsSet("custom-template") {
		cfg.Extraction.CustomTemplate = c.String("custom-template")
	}
	if c.IsSet("output") {
		cfg.Extraction.Output = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Extraction.Format = c.String("format")
	}
	if c.IsSet("model") {
		cfg.LLM.Model = c.String("model")
	}
	if c.IsSet("passes") {
		cfg.Extraction.Passes = c.Int("passes")
	}
	if c.IsSet("workers") {
		cfg.Extraction.Workers = c.Int("workers")
	}
	if c.Bool("visualize") {
		cfg.Extraction.Visualize = true
	}
	if c.IsSet("max-pages") {
		cfg.PDF.MaxPages = c.Int("max-pages")
	}
	if c.Bool("no-history") {
		cfg.History.Enabled = false
	}
}

// validateRun checks the boundary invariants once; everything downstream
// trusts the values. Zero passes/workers mean "inherit from the template"
// and are only validated when explicitly set.
func validateRun(cfg *common.Config) (string, error) {
	format, err := common.ValidateOutputFormat(cfg.Extraction.Format)
	if err != nil {
		return "", err
	}
	if cfg.Extraction.Passes != 0 {
		if err := common.ValidatePasses(cfg.Extraction.Passes); err != nil {
			return "", err
		}
	}
	if cfg.Extraction.Workers != 0 {
		if err := common.ValidateWorkers(cfg.Extraction.Workers); err != nil {
			return "", err
		}
	}
	return format, nil
}

// resolveTemplate picks the template: --custom-template wins, then
// --template (built-in name or file path), then the invoice default.
// CLI passes/workers overrides are applied to the returned copy.
func resolveTemplate(cfg *common.Config, resolver *template.Resolver) (*template.Template, error) {
	var tpl *template.Template
	var err error
	switch {
	case cfg.Extraction.CustomTemplate != "":
		tpl, err = resolver.LoadFile(cfg.Extraction.CustomTemplate)
	case cfg.Extraction.Template != "":
		tpl, err = resolver.Resolve(cfg.Extraction.Template)
	default:
		tpl, err = resolver.Get("invoice")
	}
	if err != nil {
		return nil, err
	}
	tpl.ApplyOverrides(cfg.Extraction.Passes, cfg.Extraction.Workers)
	if tpl.Settings.MaxCharBuffer == 0 {
		tpl.Settings.MaxCharBuffer = cfg.LLM.MaxCharBuffer
	}
	return tpl, nil
}

// buildPipeline wires the full processing stack from config. The returned
// cleanup closes the history store when one was opened.
func buildPipeline(cfg *common.Config, logger *slog.Logger) (*Pipeline, func(), error) {
	extractor := pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		MaxPages:  cfg.PDF.MaxPages,
	}, logger)

	client := llm.NewClient(llm.Config{
		OpenAIBaseURL: cfg.LLM.OpenAIBaseURL,
		GeminiBaseURL: cfg.LLM.GeminiBaseURL,
		Temperature:   cfg.LLM.Temperature,
		Timeout:       cfg.LLM.Timeout,
	}, logger)
	orchestrator := extract.NewOrchestrator(client, extract.NewEnvCredentialProvider(), cfg.LLM.Model, logger)

	writer := sink.NewWriter(logger)

	var rec recorder
	cleanup := func() {}
	if cfg.History.Enabled && cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path, logger)
		if err != nil {
			// history is an extra; a broken ledger must not block extraction
			logger.Warn("history.open.failed", "path", cfg.History.Path, "error", err)
		} else {
			rec = store
			cleanup = func() { _ = store.Close() }
		}
	}

	return NewPipeline(extractor, orchestrator, writer, rec, logger), cleanup, nil
}

// ExtractAction handles `pdfxtract extract <file.pdf>`.
func ExtractAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	applyFlags(c, cfg)

	input := c.Args().First()
	if input == "" {
		return cli.Exit("Error: missing input PDF\n\nUsage:\n  pdfxtract extract invoice.pdf --template invoice", 1)
	}

	format, err := validateRun(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	tpl, err := resolveTemplate(cfg, template.NewResolver(logger))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	pipeline, cleanup, err := buildPipeline(cfg, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	defer cleanup()

	outcome := pipeline.ProcessFile(c.Context, input, RunOptions{
		Template:   tpl,
		Format:     format,
		OutputPath: cfg.Extraction.Output,
		Visualize:  cfg.Extraction.Visualize,
	})

	switch outcome.Status {
	case constants.RunStatusSuccess:
		fmt.Printf("Extracted %d item(s) -> %s\n", outcome.Extractions, outcome.OutputFile)
		return nil
	case constants.RunStatusSaveFailed:
		return cli.Exit(fmt.Sprintf("Error: %s", outcome.Error), 1)
	default:
		return cli.Exit(fmt.Sprintf("Error: %s", outcome.Error), 1)
	}
}

// BatchAction handles `pdfxtract batch <dir>`.
func BatchAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	applyFlags(c, cfg)

	inputDir := c.Args().First()
	if inputDir == "" {
		return cli.Exit("Error: missing input directory\n\nUsage:\n  pdfxtract batch ./invoices --output-dir ./results", 1)
	}
	outputDir := c.String("output-dir")
	if outputDir == "" {
		outputDir = inputDir
	}

	format, err := validateRun(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	tpl, err := resolveTemplate(cfg, template.NewResolver(logger))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	pipeline, cleanup, err := buildPipeline(cfg, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	defer cleanup()

	opts := RunOptions{
		Template:  tpl,
		Format:    format,
		OutputDir: outputDir,
		Visualize: cfg.Extraction.Visualize,
	}
	process := func(ctx context.Context, path string) batch.Outcome {
		return pipeline.ProcessFile(ctx, path, opts)
	}

	runner := batch.NewRunner(process, sink.NewWriter(logger), c.Int("max-files"), logger)
	summary, err := runner.Run(c.Context, inputDir, outputDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	fmt.Printf("Batch complete: %d/%d succeeded\n", summary.Succeeded, summary.Total)
	fmt.Printf("Summary: %s\n", outputDir)
	if summary.Succeeded == 0 {
		return cli.Exit("", 2)
	}
	if summary.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// TemplatesAction lists the built-in templates.
func TemplatesAction(c *cli.Context) error {
	_, logger, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	resolver := template.NewResolver(logger)

	fmt.Println("Built-in templates:")
	for _, name := range resolver.Names() {
		tpl, err := resolver.Get(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-16s %s\n", name, tpl.Description)
		fmt.Printf("  %-16s passes=%d workers=%d buffer=%d\n",
			"", tpl.Settings.ExtractionPasses, tpl.Settings.MaxWorkers, tpl.Settings.MaxCharBuffer)
	}
	fmt.Println("\nCustom templates: pass a JSON file via --custom-template")
	return nil
}

// ModelsAction lists documented model IDs and which credentials are set.
func ModelsAction(c *cli.Context) error {
	cfg, _, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	fmt.Println("Models (any ID is accepted; these are documented, * = configured default):")
	fmt.Printf("    %-20s %-8s %-8s %-9s %s\n", "MODEL", "SPEED", "ACCURACY", "COST", "BACKEND")
	for _, m := range knownModels {
		marker := " "
		if m.ID == cfg.LLM.Model {
			marker = "*"
		}
		fmt.Printf("  %s %-20s %-8s %-8s %-9s %s\n",
			marker, m.ID, m.Speed, m.Accuracy, m.Cost, extract.DetectBackend(m.ID))
	}

	fmt.Println("\nCredentials (first set key wins):")
	for _, key := range []string{"GOOGLE_API_KEY", "OPENAI_API_KEY", "LANGEXTRACT_API_KEY"} {
		state := "not set"
		if v := os.Getenv(key); strings.TrimSpace(v) != "" {
			state = "set"
		}
		fmt.Printf("  %-20s %s\n", key, state)
	}
	return nil
}

// InfoAction analyzes a PDF when given one, and otherwise prints the
// effective configuration and history statistics.
func InfoAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if input := c.Args().First(); input != "" {
		return inspectPDF(c, cfg, logger, input)
	}

	fmt.Print(banner)
	fmt.Println("Configuration:")
	fmt.Printf("  model:           %s (backend=%s)\n", cfg.LLM.Model, extract.DetectBackend(cfg.LLM.Model))
	fmt.Printf("  format:          %s\n", cfg.Extraction.Format)
	fmt.Printf("  passes:          %d\n", cfg.Extraction.Passes)
	fmt.Printf("  workers:         %d\n", cfg.Extraction.Workers)
	fmt.Printf("  max char buffer: %d\n", cfg.LLM.MaxCharBuffer)
	fmt.Printf("  pdftotext:       %s\n", cfg.PDF.Pdftotext)
	fmt.Printf("  history:         %s (enabled=%t)\n", cfg.History.Path, cfg.History.Enabled)

	if cfg.History.Enabled && cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path, logger)
		if err == nil {
			defer store.Close()
			counts, err := store.CountByStatus(c.Context)
			if err == nil && len(counts) > 0 {
				fmt.Println("\nRun history:")
				for _, status := range []constants.RunStatus{
					constants.RunStatusSuccess, constants.RunStatusSaveFailed,
					constants.RunStatusFailed, constants.RunStatusError,
				} {
					if n := counts[status]; n > 0 {
						fmt.Printf("  %-12s %d\n", string(status), n)
					}
				}
			}
		}
	}
	return nil
}

// inspectPDF runs the text chain only and reports what an extraction would
// be working with, plus a rough time estimate per pass count.
func inspectPDF(c *cli.Context, cfg *common.Config, logger *slog.Logger, input string) error {
	extractor := pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		MaxPages:  cfg.PDF.MaxPages,
	}, logger)

	doc, err := extractor.ExtractText(c.Context, input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	fmt.Printf("File:        %s\n", input)
	fmt.Printf("Pages:       %d\n", doc.PageCount)
	fmt.Printf("Method:      %s\n", doc.Method)
	fmt.Printf("Text length: %d chars\n", len(doc.Text))
	fmt.Printf("Extracted in %s\n", doc.Duration.Round(time.Millisecond))
	for passes := 1; passes <= 3; passes++ {
		fmt.Printf("Estimated extraction time (%d pass): %s\n",
			passes, EstimateProcessingTime(len(doc.Text), passes))
	}

	sample := doc.Text
	if len(sample) > 500 {
		sample = sample[:500] + "..."
	}
	fmt.Printf("\nSample:\n%s\n", sample)
	return nil
}

// HistoryAction lists recent extraction runs.
func HistoryAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return cli.Exit("Error: run history is disabled", 1)
	}

	store, err := history.Open(cfg.History.Path, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	defer store.Close()

	runs, err := store.Recent(c.Context, c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %-11s %-14s %3d item(s)  %s",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Status), r.Template, r.Extractions, r.InputPath)
		if r.Error != "" {
			line += "  (" + r.Error + ")"
		}
		fmt.Println(line)
	}
	return nil
}
