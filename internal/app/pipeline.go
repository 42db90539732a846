package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfxtract/constants"
	"pdfxtract/internal/batch"
	"pdfxtract/internal/common"
	"pdfxtract/internal/extract"
	"pdfxtract/internal/history"
	"pdfxtract/internal/pdftext"
	"pdfxtract/internal/template"
)

// textExtractor is the PDF text chain as the pipeline sees it.
type textExtractor interface {
	ExtractText(ctx context.Context, path string) (pdftext.Document, error)
}

// runner is the LLM orchestration step as the pipeline sees it.
type runner interface {
	Run(ctx context.Context, text string, tpl *template.Template) extract.Result
	ModelID() string
}

// persister is the result sink as the pipeline sees it.
type persister interface {
	Persist(res extract.Result, dest, format string) bool
	Visualize(res extract.Result, outputPath string) (string, string)
}

// recorder is the optional run-history ledger.
type recorder interface {
	Record(ctx context.Context, run history.Run)
}

// RunOptions carries the per-run choices made at the CLI boundary. The
// pipeline trusts them; validation happened upstream.
type RunOptions struct {
	Template   *template.Template
	Format     string
	OutputPath string // explicit destination; empty means derive one
	OutputDir  string // directory for derived destinations; empty means next to the input
	Visualize  bool
}

// Pipeline runs one PDF end to end: text extraction, LLM extraction,
// persistence, optional visualization, history. It reports outcomes instead
// of returning errors so batch runs can treat every file uniformly.
type Pipeline struct {
	texts   textExtractor
	runner  runner
	sink    persister
	history recorder // nil when history is disabled
	logger  *slog.Logger
}

func NewPipeline(texts textExtractor, run runner, sink persister, hist recorder, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{texts: texts, runner: run, sink: sink, history: hist, logger: logger}
}

// ProcessFile runs path through the whole pipeline and reports the outcome.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts RunOptions) batch.Outcome {
	started := time.Now()
	runID := uuid.New().String()
	dest := opts.OutputPath
	if dest == "" {
		dest = DefaultOutputPath(path, opts.Template.Name, opts.Format, opts.OutputDir)
	}

	doc, err := p.texts.ExtractText(ctx, path)
	if err != nil {
		p.record(ctx, runID, path, dest, opts, "", constants.RunStatusFailed, 0, err.Error(), started)
		return batch.Outcome{File: path, Status: constants.RunStatusFailed, Error: err.Error()}
	}

	p.logger.Info("pipeline.text.ok",
		"run_id", runID,
		"file", path,
		"method", doc.Method.String(),
		"pages", doc.PageCount,
		"estimated", EstimateProcessingTime(len(doc.Text), opts.Template.Settings.ExtractionPasses).String(),
	)

	res := p.runner.Run(ctx, doc.Text, opts.Template)
	if !res.Success {
		p.record(ctx, runID, path, dest, opts, doc.Method.String(), constants.RunStatusFailed, 0, res.Error, started)
		return batch.Outcome{File: path, Status: constants.RunStatusFailed, Error: res.Error}
	}

	if ok := p.sink.Persist(res, dest, opts.Format); !ok {
		msg := fmt.Sprintf("extraction succeeded but saving to %s failed", dest)
		p.record(ctx, runID, path, dest, opts, doc.Method.String(), constants.RunStatusSaveFailed, len(res.Extractions), msg, started)
		return batch.Outcome{
			File:        path,
			Status:      constants.RunStatusSaveFailed,
			Extractions: len(res.Extractions),
			Error:       msg,
		}
	}

	if opts.Visualize && constants.NormalizeExt(opts.Format) != "html" {
		p.sink.Visualize(res, dest)
	}

	p.record(ctx, runID, path, dest, opts, doc.Method.String(), constants.RunStatusSuccess, len(res.Extractions), "", started)
	return batch.Outcome{
		File:        path,
		Status:      constants.RunStatusSuccess,
		Extractions: len(res.Extractions),
		OutputFile:  dest,
	}
}

func (p *Pipeline) record(ctx context.Context, runID, input, output string, opts RunOptions,
	method string, status constants.RunStatus, extractions int, errMsg string, started time.Time) {
	if p.history == nil {
		return
	}
	p.history.Record(ctx, history.Run{
		ID:          runID,
		InputPath:   input,
		OutputPath:  output,
		Template:    opts.Template.Name,
		Model:       p.runner.ModelID(),
		Format:      constants.NormalizeExt(opts.Format),
		Status:      status,
		Extractions: extractions,
		TextMethod:  method,
		Error:       errMsg,
		StartedAt:   started.UTC(),
		Duration:    time.Since(started),
	})
}

// DefaultOutputPath derives "<stem>_<template>_extracted.<format>" from the
// input name, placed in outputDir when given, otherwise next to the input.
func DefaultOutputPath(inputPath, templateName, format, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := common.SanitizeFilename(fmt.Sprintf("%s_%s_extracted.%s", stem, templateName, constants.NormalizeExt(format)))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, name)
}

// EstimateProcessingTime is the rough wall-clock guess surfaced before an
// extraction starts: about two seconds per thousand characters, per pass.
func EstimateProcessingTime(textLen, passes int) time.Duration {
	if passes < 1 {
		passes = 1
	}
	secs := float64(textLen) / 1000.0 * 2.0 * float64(passes)
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs * float64(time.Second)).Round(time.Second)
}
