package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfxtract/internal/common"
)

func writeTemplateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template file: %v", err)
	}
	return path
}

func TestGet_BuiltIn(t *testing.T) {
	r := NewResolver(nil)

	tpl, err := r.Get("invoice")
	if err != nil {
		t.Fatalf("Get(invoice) error = %v", err)
	}
	if tpl.Name != "invoice" {
		t.Errorf("Name = %q, want invoice", tpl.Name)
	}
	if len(tpl.Examples) == 0 {
		t.Error("built-in template should carry examples")
	}
	if tpl.Settings.ExtractionPasses < 1 || tpl.Settings.ExtractionPasses > 3 {
		t.Errorf("ExtractionPasses = %d, want within [1,3]", tpl.Settings.ExtractionPasses)
	}
}

func TestGet_UnknownListsKnownNames(t *testing.T) {
	r := NewResolver(nil)

	_, err := r.Get("nonexistent_template")
	if !errors.Is(err, common.ErrTemplateNotFound) {
		t.Fatalf("error = %v, want ErrTemplateNotFound", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "nonexistent_template") {
		t.Errorf("error should name the requested identifier: %q", msg)
	}
	for _, known := range []string{"invoice", "resume", "receipt"} {
		if !strings.Contains(msg, known) {
			t.Errorf("error should list known template %q: %q", known, msg)
		}
	}
}

func TestLoadFile_Valid(t *testing.T) {
	path := writeTemplateFile(t, `{
		"name": "shipping_label",
		"prompt": "Extract shipping information.",
		"examples": [{
			"text": "Ship to: 123 Main St",
			"extractions": [{"extraction_class": "address", "extraction_text": "123 Main St", "attributes": {"type": "destination"}}]
		}]
	}`)

	r := NewResolver(nil)
	tpl, err := r.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if tpl.Name != "shipping_label" {
		t.Errorf("Name = %q", tpl.Name)
	}
	// settings defaults fill in when the file omits them
	if tpl.Settings.ExtractionPasses != 1 || tpl.Settings.MaxWorkers != 10 || tpl.Settings.MaxCharBuffer != 1000 {
		t.Errorf("Settings = %+v, want defaults", tpl.Settings)
	}
}

func TestLoadFile_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing string
	}{
		{"no name", `{"prompt": "p", "examples": []}`, "name"},
		{"no prompt", `{"name": "n", "examples": []}`, "prompt"},
		{"no examples", `{"name": "n", "prompt": "p"}`, "examples"},
		{"name missing reported first", `{"examples": []}`, "name"},
	}
	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemplateFile(t, tt.content)
			_, err := r.LoadFile(path)
			if !errors.Is(err, common.ErrMissingTemplateField) {
				t.Fatalf("error = %v, want ErrMissingTemplateField", err)
			}
			if !strings.Contains(err.Error(), "required field: "+tt.missing) {
				t.Errorf("error should name field %q, got %q", tt.missing, err.Error())
			}
		})
	}
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writeTemplateFile(t, `{"name": "broken",`)
	r := NewResolver(nil)
	if _, err := r.LoadFile(path); !errors.Is(err, common.ErrMalformedTemplate) {
		t.Fatalf("error = %v, want ErrMalformedTemplate", err)
	}
}

func TestLoadFile_SchemaViolation(t *testing.T) {
	// extraction_class must be a string
	path := writeTemplateFile(t, `{
		"name": "bad",
		"prompt": "p",
		"examples": [{"text": "t", "extractions": [{"extraction_class": 42, "extraction_text": "x"}]}]
	}`)
	r := NewResolver(nil)
	if _, err := r.LoadFile(path); !errors.Is(err, common.ErrMalformedTemplate) {
		t.Fatalf("error = %v, want ErrMalformedTemplate", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := NewResolver(nil)
	tpl, err := r.Get("invoice")
	if err != nil {
		t.Fatal(err)
	}

	tpl.ApplyOverrides(3, 7)
	if tpl.Settings.ExtractionPasses != 3 {
		t.Errorf("ExtractionPasses = %d, want 3", tpl.Settings.ExtractionPasses)
	}
	if tpl.Settings.MaxWorkers != 7 {
		t.Errorf("MaxWorkers = %d, want 7", tpl.Settings.MaxWorkers)
	}

	// zero values leave template defaults alone
	tpl.ApplyOverrides(0, 0)
	if tpl.Settings.ExtractionPasses != 3 || tpl.Settings.MaxWorkers != 7 {
		t.Error("zero overrides must not reset settings")
	}

	// the registry copy is untouched
	fresh, _ := r.Get("invoice")
	if fresh.Settings.ExtractionPasses == 3 && fresh.Settings.MaxWorkers == 7 {
		t.Error("overrides leaked into the registry")
	}
}

func TestResolve_NameThenPath(t *testing.T) {
	r := NewResolver(nil)

	if tpl, err := r.Resolve("receipt"); err != nil || tpl.Name != "receipt" {
		t.Errorf("Resolve(receipt) = %v, %v", tpl, err)
	}

	path := writeTemplateFile(t, `{"name": "custom", "prompt": "p", "examples": []}`)
	if tpl, err := r.Resolve(path); err != nil || tpl.Name != "custom" {
		t.Errorf("Resolve(path) = %v, %v", tpl, err)
	}

	if _, err := r.Resolve("no_such_thing"); !errors.Is(err, common.ErrTemplateNotFound) {
		t.Errorf("Resolve(unknown) error = %v, want ErrTemplateNotFound", err)
	}
}
