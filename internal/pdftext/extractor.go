package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfxtract/constants"
	"pdfxtract/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// Document is the outcome of running the chain over one PDF.
// Text carries "--- Page N ---" headers so downstream prompting can locate
// page boundaries; PageCount is the total page count reported by the winning
// strategy, not the number of non-empty pages.
type Document struct {
	Text      string
	PageCount int
	Method    Strategy
	Duration  time.Duration
}

// strategyOutput is the raw per-strategy result before page joining.
// pages is indexed by zero-based page number; empty entries are pages the
// strategy could not read text from.
type strategyOutput struct {
	pages []string
	total int
}

// attempt records one strategy try for the exhaustion diagnostic.
type attempt struct {
	strategy Strategy
	err      error
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	// exec is the per-strategy entry point; tests swap it out.
	exec func(ctx context.Context, s Strategy, path string) (strategyOutput, error)
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	e.exec = e.runStrategy
	return e
}

// ExtractText runs the strategy chain over the PDF at path and returns the
// first non-empty result. Strategy failures are soft: they are logged,
// recorded, and the chain moves on. Only input errors and full exhaustion
// surface as errors.
func (e *Extractor) ExtractText(ctx context.Context, path string) (Document, error) {
	start := time.Now()

	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return Document{}, common.NewAppError("PDF_NOT_FOUND",
			fmt.Sprintf("PDF file not found: %s", path), common.ErrNotFound)
	}
	if !constants.IsPDFExt(filepath.Ext(path)) {
		return Document{}, common.NewAppError("NOT_A_PDF",
			fmt.Sprintf("file is not a PDF: %s", path), common.ErrInvalidInput)
	}

	attempts := make([]attempt, 0, len(chainOrder))
	for _, s := range chainOrder {
		out, err := e.exec(ctx, s, path)
		if err != nil {
			e.logger.Warn("pdftext.strategy.failed", "strategy", s.String(), "path", path, "error", err)
			attempts = append(attempts, attempt{strategy: s, err: err})
			continue
		}
		text := joinPages(out.pages)
		if strings.TrimSpace(text) == "" {
			e.logger.Warn("pdftext.strategy.empty", "strategy", s.String(), "path", path, "pages", out.total)
			attempts = append(attempts, attempt{strategy: s, err: fmt.Errorf("no extractable text")})
			continue
		}
		dur := time.Since(start)
		e.logger.Info("pdftext.ok",
			"strategy", s.String(),
			"path", path,
			"pages", out.total,
			"text_len", len(text),
			"elapsed_ms", dur.Milliseconds(),
		)
		return Document{Text: text, PageCount: out.total, Method: s, Duration: dur}, nil
	}

	return Document{}, common.NewAppError("EXTRACTION_EXHAUSTED",
		fmt.Sprintf("failed to extract text from PDF %s: %s", path, summarize(attempts)),
		common.ErrExtractionExhausted)
}

func (e *Extractor) runStrategy(ctx context.Context, s Strategy, path string) (strategyOutput, error) {
	var out strategyOutput
	var err error
	switch s {
	case StrategyPoppler:
		out, err = e.extractPoppler(ctx, path)
	case StrategyMuPDF:
		out, err = e.extractMuPDF(ctx, path)
	case StrategyNative:
		out, err = e.extractNative(ctx, path)
	default:
		return strategyOutput{}, fmt.Errorf("unknown strategy %d", s)
	}
	if err != nil {
		return strategyOutput{}, err
	}
	if e.cfg.MaxPages > 0 && len(out.pages) > e.cfg.MaxPages {
		out.pages = out.pages[:e.cfg.MaxPages]
	}
	return out, nil
}

// joinPages renders per-page text with page-delimiter headers, preserving
// the real (1-based) page numbers of non-empty pages.
func joinPages(pages []string) string {
	var parts []string
	for i, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, p))
	}
	return strings.Join(parts, "\n\n")
}

func summarize(attempts []attempt) string {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.strategy, a.err))
	}
	return strings.Join(parts, "; ")
}
