package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pdfxtract/internal/extract"
)

// BuildExtractionSchema returns the JSON-Schema (draft 2020-12 subset) the
// model's reply must satisfy: an object with an ordered extractions array.
func BuildExtractionSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"extractions"},
		"properties": map[string]any{
			"extractions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"extraction_class", "extraction_text"},
					"properties": map[string]any{
						"extraction_class": map[string]any{"type": "string", "minLength": 1},
						"extraction_text":  map[string]any{"type": "string"},
						"attributes":       map[string]any{"type": "object"},
						"confidence":       map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
					},
				},
			},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// replyPayload mirrors the JSON shape the providers are instructed to emit.
type replyPayload struct {
	Extractions []struct {
		ExtractionClass string         `json:"extraction_class"`
		ExtractionText  string         `json:"extraction_text"`
		Attributes      map[string]any `json:"attributes"`
		Confidence      *float64       `json:"confidence"`
	} `json:"extractions"`
}

// parseReply validates and decodes a model reply into service extractions.
func parseReply(content []byte) ([]extract.ServiceExtraction, error) {
	if err := ValidateJSONAgainstSchema(BuildExtractionSchema(), content); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	var payload replyPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal extractions: %w", err)
	}
	items := make([]extract.ServiceExtraction, 0, len(payload.Extractions))
	for _, e := range payload.Extractions {
		items = append(items, extract.ServiceExtraction{
			ExtractionClass: e.ExtractionClass,
			ExtractionText:  e.ExtractionText,
			Attributes:      e.Attributes,
			Confidence:      e.Confidence,
		})
	}
	return items, nil
}
