package common

import (
	"fmt"
	"strings"

	"pdfxtract/constants"
)

// ValidateOutputFormat normalizes and validates an output format name.
// The core sinks trust the format they are handed; callers validate here.
func ValidateOutputFormat(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !constants.IsOutputFormat(name) {
		return "", NewAppError("FORMAT_ERROR",
			fmt.Sprintf("unsupported format: %s (supported: %s)", name, strings.Join(constants.OutputFormats, ", ")),
			ErrInvalidInput)
	}
	return name, nil
}

// ValidatePasses enforces the 1..3 extraction-pass window. Validation happens
// once at this boundary; the orchestrator does not re-check.
func ValidatePasses(passes int) error {
	if passes < 1 || passes > 3 {
		return NewAppError("PASSES_ERROR",
			fmt.Sprintf("extraction passes must be between 1 and 3, got %d", passes),
			ErrInvalidInput)
	}
	return nil
}

// ValidateWorkers enforces a positive worker hint.
func ValidateWorkers(workers int) error {
	if workers < 1 {
		return NewAppError("WORKERS_ERROR",
			fmt.Sprintf("workers must be positive, got %d", workers),
			ErrInvalidInput)
	}
	return nil
}

// SanitizeFilename replaces characters that are unsafe in generated output
// names and caps the length at 200 bytes, preserving the extension.
func SanitizeFilename(name string) string {
	const invalid = `<>:"/\|?*`
	out := []rune(name)
	for i, r := range out {
		if strings.ContainsRune(invalid, r) {
			out[i] = '_'
		}
	}
	s := string(out)
	if len(s) > 200 {
		ext := ""
		if i := strings.LastIndex(s, "."); i > 0 && len(s)-i <= 10 {
			ext = s[i:]
		}
		s = s[:200-len(ext)] + ext
	}
	return s
}
