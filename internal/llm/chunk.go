package llm

import "strings"

// chunkText splits text into chunks of at most maxChars, preferring to cut
// at paragraph boundaries, then line boundaries, before splitting mid-line.
// The whole text becomes a single chunk when it already fits.
func chunkText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, piece := range splitLong(para, maxChars) {
			need := len(piece)
			if current.Len() > 0 {
				need += 2
			}
			if current.Len()+need > maxChars && current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(piece)
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// splitLong breaks a single paragraph that exceeds maxChars, first on line
// breaks and then on hard character offsets for pathological single lines.
func splitLong(para string, maxChars int) []string {
	if len(para) <= maxChars {
		return []string{para}
	}
	var out []string
	var current strings.Builder
	for _, line := range strings.Split(para, "\n") {
		for len(line) > maxChars {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			out = append(out, line[:maxChars])
			line = line[maxChars:]
		}
		need := len(line)
		if current.Len() > 0 {
			need++
		}
		if current.Len()+need > maxChars && current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
