package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"pdfxtract/constants"
	"pdfxtract/internal/sink"
)

// Outcome is the per-file record of a batch run. It is what lands in
// batch_summary.json, one entry per processed PDF.
type Outcome struct {
	File        string              `json:"file"`
	Status      constants.RunStatus `json:"status"`
	Extractions int                 `json:"extractions"`
	OutputFile  string              `json:"output_file,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Summary aggregates a whole batch run.
type Summary struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"results"`
}

// ProcessFunc handles one PDF end to end and reports its outcome. It must
// not return an error: failures are encoded in the outcome status so one bad
// file never stops the batch.
type ProcessFunc func(ctx context.Context, path string) Outcome

// Runner walks a directory of PDFs and runs each one through process,
// isolating failures per file and writing summary artifacts at the end.
type Runner struct {
	process  ProcessFunc
	writer   *sink.Writer
	logger   *slog.Logger
	maxFiles int
}

// NewRunner builds a batch runner. maxFiles caps how many PDFs are
// processed; zero or negative means no cap.
func NewRunner(process ProcessFunc, writer *sink.Writer, maxFiles int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if writer == nil {
		writer = sink.NewWriter(logger)
	}
	return &Runner{process: process, writer: writer, logger: logger, maxFiles: maxFiles}
}

// FindPDFFiles returns every .pdf under dir (recursive), sorted by path so
// batch ordering is stable across runs.
func FindPDFFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if constants.IsPDFExt(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every PDF under inputDir and writes batch_summary.json and
// batch_summary.xlsx into outputDir. The returned error covers setup
// problems only; per-file failures live in the summary.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	start := time.Now()

	files, err := FindPDFFiles(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no PDF files found in %s", inputDir)
	}
	if r.maxFiles > 0 && len(files) > r.maxFiles {
		r.logger.Info("batch.capped", "found", len(files), "max_files", r.maxFiles)
		files = files[:r.maxFiles]
	}

	r.logger.Info("batch.start", "input_dir", inputDir, "output_dir", outputDir, "files", len(files))

	summary := Summary{Total: len(files), Outcomes: make([]Outcome, 0, len(files))}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.logger.Info("batch.file.start", "index", i+1, "total", len(files), "file", path)

		outcome := r.processIsolated(ctx, path)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == constants.RunStatusSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}

		r.logger.Info("batch.file.done",
			"file", path,
			"status", string(outcome.Status),
			"extractions", outcome.Extractions,
		)
	}

	r.writeSummary(outputDir, summary)

	r.logger.Info("batch.done",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// processIsolated shields the batch loop from a panicking processor; a
// panic becomes an error-status outcome for that file.
func (r *Runner) processIsolated(ctx context.Context, path string) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("batch.file.panic", "file", path, "panic", rec)
			outcome = Outcome{
				File:   path,
				Status: constants.RunStatusError,
				Error:  fmt.Sprintf("unexpected failure: %v", rec),
			}
		}
	}()
	return r.process(ctx, path)
}

func (r *Runner) writeSummary(outputDir string, summary Summary) {
	jsonPath := filepath.Join(outputDir, "batch_summary.json")
	if err := writeSummaryJSON(jsonPath, summary); err != nil {
		r.logger.Warn("batch.summary.json_failed", "path", jsonPath, "error", err)
	}

	rows := make([]sink.SummaryRow, 0, len(summary.Outcomes))
	for _, o := range summary.Outcomes {
		rows = append(rows, sink.SummaryRow{
			File:        o.File,
			Status:      string(o.Status),
			Extractions: o.Extractions,
			OutputFile:  o.OutputFile,
			Error:       o.Error,
		})
	}
	xlsxPath := filepath.Join(outputDir, "batch_summary.xlsx")
	if err := r.writer.WriteBatchWorkbook(xlsxPath, rows); err != nil {
		r.logger.Warn("batch.summary.xlsx_failed", "path", xlsxPath, "error", err)
	}
}
