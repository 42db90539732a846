package pdftext

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractNative reads page text with the pure-Go PDF reader. It handles
// fewer encodings than the other strategies, which is why it sits last in
// the chain.
func (e *Extractor) extractNative(ctx context.Context, path string) (strategyOutput, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return strategyOutput{}, fmt.Errorf("open with native reader: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		select {
		case <-ctx.Done():
			return strategyOutput{}, ctx.Err()
		default:
		}
		p := r.Page(n)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("pdftext.native.page_failed", "path", path, "page", n, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return strategyOutput{pages: pages, total: total}, nil
}
