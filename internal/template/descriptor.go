package template

// Settings are the tunables one extraction run is parameterized with.
// Validation of these values happens at the CLI boundary; everything below
// that boundary treats them as already valid.
type Settings struct {
	ExtractionPasses int `json:"extraction_passes"`
	MaxWorkers       int `json:"max_workers"`
	MaxCharBuffer    int `json:"max_char_buffer"`
}

// Extraction is one few-shot extraction example: a class label, the verbatim
// span from the example text, and free-form attributes.
type Extraction struct {
	Class      string         `json:"extraction_class"`
	Text       string         `json:"extraction_text"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Example pairs a source text with the extractions a model should produce
// for it.
type Example struct {
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}

// Template is the resolved descriptor consumed by the orchestrator: prompt,
// few-shot examples, and settings. Immutable once handed out; overrides are
// applied exactly once during resolution.
type Template struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Prompt      string    `json:"prompt"`
	Examples    []Example `json:"examples"`
	Settings    Settings  `json:"settings"`
}

// ApplyOverrides writes caller-supplied passes/workers over the template
// defaults. Zero values leave the template's own settings in place.
func (t *Template) ApplyOverrides(passes, workers int) {
	if passes > 0 {
		t.Settings.ExtractionPasses = passes
	}
	if workers > 0 {
		t.Settings.MaxWorkers = workers
	}
}
