package extract

// Extraction is one normalized extraction item. Confidence is nil when the
// service did not report one; the json tags match the persisted layout.
type Extraction struct {
	Class      string         `json:"class"`
	Text       string         `json:"text"`
	Attributes map[string]any `json:"attributes"`
	Confidence *float64       `json:"confidence"`
}

// Result is the canonical outcome of one extraction run. Success is false
// whenever the service call failed or returned a non-conforming shape; the
// error string then carries the cause and Extractions is empty.
type Result struct {
	Extractions []Extraction   `json:"extractions"`
	Metadata    map[string]any `json:"metadata"`
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
}
