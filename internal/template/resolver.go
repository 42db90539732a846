package template

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pdfxtract/internal/common"
)

// requiredFields are checked in this order; the error names the first absent one.
var requiredFields = []string{"name", "prompt", "examples"}

// fileSchema validates the deeper structure of custom template files after
// the required top-level fields are known to exist.
const fileSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"prompt": {"type": "string", "minLength": 1},
		"examples": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text", "extractions"],
				"properties": {
					"text": {"type": "string"},
					"extractions": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["extraction_class", "extraction_text"],
							"properties": {
								"extraction_class": {"type": "string", "minLength": 1},
								"extraction_text": {"type": "string"},
								"attributes": {"type": "object"}
							}
						}
					}
				}
			}
		},
		"settings": {
			"type": "object",
			"properties": {
				"extraction_passes": {"type": "integer", "minimum": 1, "maximum": 3},
				"max_workers": {"type": "integer", "minimum": 1},
				"max_char_buffer": {"type": "integer", "minimum": 1}
			}
		}
	}
}`

var compiledFileSchema = jsonschema.MustCompileString("template.schema.json", fileSchema)

// Resolver produces validated template descriptors from built-in names or
// custom template files.
type Resolver struct {
	registry map[string]Template
	logger   *slog.Logger
}

func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{registry: builtinTemplates(), logger: logger}
}

// Names returns the sorted built-in template names.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a built-in template by exact name. The returned descriptor is
// a copy, so callers can apply overrides without touching the registry.
func (r *Resolver) Get(name string) (*Template, error) {
	t, ok := r.registry[name]
	if !ok {
		return nil, common.NewAppError("TEMPLATE_NOT_FOUND",
			fmt.Sprintf("template %q not found; available: %s", name, strings.Join(r.Names(), ", ")),
			common.ErrTemplateNotFound)
	}
	cp := t
	cp.Examples = append([]Example(nil), t.Examples...)
	return &cp, nil
}

// LoadFile reads and validates a custom template JSON file.
func (r *Resolver) LoadFile(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError("TEMPLATE_READ",
			fmt.Sprintf("template file not found: %s", path), common.ErrNotFound)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, common.NewAppError("TEMPLATE_PARSE",
			fmt.Sprintf("invalid JSON in template file %s", path),
			fmt.Errorf("%w: %v", common.ErrMalformedTemplate, err))
	}
	for _, field := range requiredFields {
		if _, ok := generic[field]; !ok {
			return nil, common.NewAppError("TEMPLATE_FIELD",
				fmt.Sprintf("template missing required field: %s", field),
				common.ErrMissingTemplateField)
		}
	}
	if err := compiledFileSchema.Validate(generic); err != nil {
		return nil, common.NewAppError("TEMPLATE_SCHEMA",
			fmt.Sprintf("template file %s failed schema validation", path),
			fmt.Errorf("%w: %v", common.ErrMalformedTemplate, err))
	}

	var t Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, common.NewAppError("TEMPLATE_DECODE",
			fmt.Sprintf("template file %s did not decode", path),
			fmt.Errorf("%w: %v", common.ErrMalformedTemplate, err))
	}
	applySettingsDefaults(&t)

	r.logger.Info("template.loaded", "name", t.Name, "path", path, "examples", len(t.Examples))
	return &t, nil
}

// Resolve treats selector as a built-in name first and a file path second.
func (r *Resolver) Resolve(selector string) (*Template, error) {
	if _, ok := r.registry[selector]; ok {
		return r.Get(selector)
	}
	if st, err := os.Stat(selector); err == nil && !st.IsDir() {
		return r.LoadFile(selector)
	}
	return r.Get(selector) // yields the not-found error listing known names
}

func applySettingsDefaults(t *Template) {
	if t.Settings.ExtractionPasses == 0 {
		t.Settings.ExtractionPasses = 1
	}
	if t.Settings.MaxWorkers == 0 {
		t.Settings.MaxWorkers = 10
	}
	if t.Settings.MaxCharBuffer == 0 {
		t.Settings.MaxCharBuffer = 1000
	}
}
