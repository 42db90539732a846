package pdftext

import (
	"context"
	"fmt"
	"strings"
)

// extractPoppler shells out to pdftotext with layout preservation.
// Poppler separates pages with form feeds, so splitting on \f recovers the
// per-page texts and the total page count.
func (e *Extractor) extractPoppler(ctx context.Context, path string) (strategyOutput, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return strategyOutput{}, fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	// pdftotext emits a trailing \f after the last page; trim it before
	// splitting so the page count is not inflated.
	text := strings.TrimSuffix(string(out), "\f")
	pages := strings.Split(text, "\f")
	return strategyOutput{pages: pages, total: len(pages)}, nil
}
