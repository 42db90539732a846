package sink

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sort"

	"pdfxtract/internal/extract"
)

var pageTemplate = template.Must(template.New("extractions").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Extraction Results</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 960px; color: #1f2430; }
  h1 { font-size: 1.4rem; }
  .meta { color: #667; font-size: 0.85rem; margin-bottom: 1.5rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #d8dce6; padding: 0.5rem 0.75rem; text-align: left; vertical-align: top; }
  th { background: #f2f4f8; }
  .class { font-weight: 600; white-space: nowrap; }
  .conf { white-space: nowrap; color: #667; }
  .attrs { font-size: 0.85rem; color: #445; }
  .empty { color: #889; font-style: italic; padding: 2rem 0; }
</style>
</head>
<body>
<h1>Extraction Results</h1>
<div class="meta">{{len .Items}} extraction(s){{if .Model}} &middot; model {{.Model}}{{end}}</div>
{{if .Items}}
<table>
<tr><th>Class</th><th>Text</th><th>Confidence</th><th>Attributes</th></tr>
{{range .Items}}
<tr>
  <td class="class">{{.Class}}</td>
  <td>{{.Text}}</td>
  <td class="conf">{{.Confidence}}</td>
  <td class="attrs">{{range .Attributes}}{{.}}<br>{{end}}</td>
</tr>
{{end}}
</table>
{{else}}
<div class="empty">No extractions.</div>
{{end}}
</body>
</html>
`))

type pageItem struct {
	Class      string
	Text       string
	Confidence string
	Attributes []string
}

type pageData struct {
	Model string
	Items []pageItem
}

// renderHTML writes a standalone review page for the result's extractions.
func renderHTML(dest string, res extract.Result) error {
	data := pageData{Items: make([]pageItem, 0, len(res.Extractions))}
	if m, ok := res.Metadata["model_id"].(string); ok {
		data.Model = m
	}
	for _, e := range res.Extractions {
		item := pageItem{Class: e.Class, Text: e.Text, Confidence: formatConfidence(e.Confidence)}
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			item.Attributes = append(item.Attributes, fmt.Sprintf("%s: %v", k, e.Attributes[k]))
		}
		data.Items = append(data.Items, item)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}
