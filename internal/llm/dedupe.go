package llm

import "pdfxtract/internal/extract"

// dedupeExtractions removes repeats of the same (class, text) pair, keeping
// the first occurrence. Multi-pass runs and overlapping chunks both produce
// duplicates; order of first sighting is preserved.
func dedupeExtractions(items []extract.ServiceExtraction) []extract.ServiceExtraction {
	seen := make(map[string]struct{}, len(items))
	out := make([]extract.ServiceExtraction, 0, len(items))
	for _, item := range items {
		key := item.ExtractionClass + "\x00" + item.ExtractionText
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
