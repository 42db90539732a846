package pdftext

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// extractMuPDF reads page text through the MuPDF bindings.
func (e *Extractor) extractMuPDF(ctx context.Context, path string) (strategyOutput, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return strategyOutput{}, fmt.Errorf("open with mupdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]string, 0, total)
	for n := 0; n < total; n++ {
		select {
		case <-ctx.Done():
			return strategyOutput{}, ctx.Err()
		default:
		}
		text, err := doc.Text(n)
		if err != nil {
			e.logger.Warn("pdftext.mupdf.page_failed", "path", path, "page", n+1, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return strategyOutput{pages: pages, total: total}, nil
}
