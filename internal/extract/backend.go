package extract

import "strings"

// Backend identifies the model provider family a model id routes to.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendGemini Backend = "gemini"
)

// DetectBackend routes a model identifier to its provider family purely from
// the identifier substring, case-insensitively. Chat-style "gpt" markers are
// checked first, "gemini" markers second, and anything unrecognized defaults
// to the Gemini family.
func DetectBackend(modelID string) Backend {
	id := strings.ToLower(modelID)
	if strings.Contains(id, "gpt") {
		return BackendOpenAI
	}
	if strings.Contains(id, "gemini") {
		return BackendGemini
	}
	return BackendGemini
}
