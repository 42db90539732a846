package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfxtract/constants"
	"pdfxtract/internal/extract"
)

// Writer persists extraction results to disk in the supported output
// formats. Persist never returns an error: a failed save is reported as
// false and logged, so a batch run can keep going.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Persist writes res to dest in the given format and reports whether the
// write fully succeeded.
func (w *Writer) Persist(res extract.Result, dest, format string) bool {
	start := time.Now()
	format = constants.NormalizeExt(format)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		w.logger.Error("save.failed", "path", dest, "format", format, "error", err)
		return false
	}

	var err error
	switch format {
	case "json":
		err = writeJSON(dest, res)
	case "jsonl":
		err = writeJSONL(dest, res)
	case "csv":
		err = writeCSV(dest, res)
	case "html":
		err = w.writeHTML(dest, res)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		w.logger.Error("save.failed", "path", dest, "format", format, "error", err)
		return false
	}

	w.logger.Info("save.ok",
		"path", dest,
		"format", format,
		"extractions", len(res.Extractions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return true
}

// Visualize writes the review artifacts next to outputPath: a JSONL dump of
// the extractions and an HTML page rendering them. Both are best-effort.
func (w *Writer) Visualize(res extract.Result, outputPath string) (string, string) {
	stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	jsonlPath := stem + ".jsonl"
	htmlPath := stem + ".html"

	if err := writeJSONL(jsonlPath, res); err != nil {
		w.logger.Warn("visualize.jsonl.failed", "path", jsonlPath, "error", err)
		return "", ""
	}
	if err := renderHTML(htmlPath, res); err != nil {
		w.logger.Warn("visualize.html.failed", "path", htmlPath, "error", err)
		return jsonlPath, ""
	}
	w.logger.Info("visualize.ok", "jsonl", jsonlPath, "html", htmlPath)
	return jsonlPath, htmlPath
}

// writeHTML keeps the JSONL dump the page was built from next to it, so the
// raw extractions stay inspectable alongside the rendered view.
func (w *Writer) writeHTML(dest string, res extract.Result) error {
	jsonlPath := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".jsonl"
	if err := writeJSONL(jsonlPath, res); err != nil {
		return fmt.Errorf("write jsonl source: %w", err)
	}
	return renderHTML(dest, res)
}
