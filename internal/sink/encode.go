package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"pdfxtract/internal/extract"
)

// writeJSON writes the full result envelope, pretty-printed. HTML escaping
// is off so extracted text like "R&D" survives verbatim.
func writeJSON(dest string, res extract.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

// writeJSONL writes one extraction per line; the envelope (metadata, success
// flag) is dropped so each line stands alone.
func writeJSONL(dest string, res extract.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, item := range res.Extractions {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode jsonl item: %w", err)
		}
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

// writeCSV writes a fixed class,text,confidence header; each row then
// carries its own attributes as trailing attr_<key>=<value> cells, keys
// sorted. Rows may therefore differ in width.
func writeCSV(dest string, res extract.Result) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write([]string{"class", "text", "confidence"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range res.Extractions {
		row := []string{item.Class, item.Text, formatConfidence(item.Confidence)}
		for _, key := range sortedAttrKeys(item.Attributes) {
			row = append(row, fmt.Sprintf("attr_%s=%v", key, item.Attributes[key]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

func formatConfidence(c *float64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatFloat(*c, 'f', -1, 64)
}

func sortedAttrKeys(attrs map[string]any) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
