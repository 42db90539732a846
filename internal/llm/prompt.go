package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"pdfxtract/internal/template"
)

const systemPrompt = `You are a precise information extraction engine.
You read a document and return structured extractions as JSON.
Rules:
- Extract text spans exactly as they appear in the document.
- Never paraphrase, translate, or invent values.
- Attach attributes only when the document supports them.
- Respond with a single JSON object and nothing else, matching:
  {"extractions": [{"extraction_class": "...", "extraction_text": "...", "attributes": {...}, "confidence": 0.0}]}
- If nothing matches, return {"extractions": []}.`

// buildUserPrompt renders the task description, few-shot examples, and the
// document chunk into one user message. Examples are serialized as the exact
// JSON shape the reply must use so the model can pattern-match the format.
func buildUserPrompt(taskPrompt string, examples []template.Example, chunk string) (string, error) {
	var b strings.Builder
	b.WriteString("Task:\n")
	b.WriteString(strings.TrimSpace(taskPrompt))
	b.WriteString("\n")

	for i, ex := range examples {
		reply := map[string]any{"extractions": exampleExtractions(ex)}
		encoded, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode example %d: %w", i+1, err)
		}
		fmt.Fprintf(&b, "\nExample %d input:\n%s\n\nExample %d output:\n%s\n", i+1, ex.Text, i+1, encoded)
	}

	b.WriteString("\nDocument:\n")
	b.WriteString(chunk)
	b.WriteString("\n\nOutput:")
	return b.String(), nil
}

func exampleExtractions(ex template.Example) []map[string]any {
	out := make([]map[string]any, 0, len(ex.Extractions))
	for _, e := range ex.Extractions {
		item := map[string]any{
			"extraction_class": e.Class,
			"extraction_text":  e.Text,
		}
		if len(e.Attributes) > 0 {
			item["attributes"] = e.Attributes
		}
		out = append(out, item)
	}
	return out
}
