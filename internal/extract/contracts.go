package extract

import (
	"context"

	"pdfxtract/internal/template"
)

// Request is the full parameter set handed to the external extraction
// service for one document.
type Request struct {
	Text          string
	Prompt        string
	Examples      []template.Example
	ModelID       string
	Backend       Backend
	Passes        int
	MaxWorkers    int
	MaxCharBuffer int
	APIKey        string
}

// ServiceExtraction is one structured fact as reported by the service.
// Confidence is nil when the service does not report it.
type ServiceExtraction struct {
	ExtractionClass string
	ExtractionText  string
	Attributes      map[string]any
	Confidence      *float64
}

// Response is what the external service returns for one request.
type Response struct {
	Extractions []ServiceExtraction
}

// Service is the external extraction collaborator the orchestrator depends
// on. Implementations own their internal parallelism; the orchestrator only
// supplies the worker and chunking hints.
type Service interface {
	Extract(ctx context.Context, req Request) (Response, error)
}

// CredentialProvider resolves the API credential to pass explicitly to the
// service. The orchestrator never reads ambient state itself.
type CredentialProvider interface {
	Resolve() (string, error)
}
