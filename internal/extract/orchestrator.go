package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pdfxtract/internal/template"
)

// Orchestrator converts a resolved template plus raw text into a service
// call and normalizes the outcome. It never lets a transport-level error
// escape: every failure becomes a Result with Success=false, and the caller
// decides what to do with it.
type Orchestrator struct {
	svc     Service
	creds   CredentialProvider
	modelID string
	logger  *slog.Logger
}

func NewOrchestrator(svc Service, creds CredentialProvider, modelID string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if modelID == "" {
		modelID = "gemini-2.5-flash"
	}
	return &Orchestrator{svc: svc, creds: creds, modelID: modelID, logger: logger}
}

func (o *Orchestrator) ModelID() string {
	return o.modelID
}

// Run performs one extraction over text with the given template descriptor.
// The descriptor's settings are treated as already validated.
func (o *Orchestrator) Run(ctx context.Context, text string, tpl *template.Template) Result {
	rid := uuid.New().String()
	start := time.Now()
	backend := DetectBackend(o.modelID)

	o.logger.Info("extract.start",
		"req_id", rid,
		"model", o.modelID,
		"backend", string(backend),
		"template", tpl.Name,
		"text_len", len(text),
		"passes", tpl.Settings.ExtractionPasses,
		"workers", tpl.Settings.MaxWorkers,
	)

	apiKey, err := o.creds.Resolve()
	if err != nil {
		return o.fail(rid, start, fmt.Errorf("resolve credential: %w", err))
	}

	resp, err := o.svc.Extract(ctx, Request{
		Text:          text,
		Prompt:        tpl.Prompt,
		Examples:      tpl.Examples, // one-to-one, order preserved
		ModelID:       o.modelID,
		Backend:       backend,
		Passes:        tpl.Settings.ExtractionPasses,
		MaxWorkers:    tpl.Settings.MaxWorkers,
		MaxCharBuffer: tpl.Settings.MaxCharBuffer,
		APIKey:        apiKey,
	})
	if err != nil {
		return o.fail(rid, start, err)
	}

	extractions := make([]Extraction, 0, len(resp.Extractions))
	for _, item := range resp.Extractions {
		extractions = append(extractions, Extraction{
			Class:      item.ExtractionClass,
			Text:       item.ExtractionText,
			Attributes: item.Attributes,
			Confidence: item.Confidence,
		})
	}

	o.logger.Info("extract.ok",
		"req_id", rid,
		"model", o.modelID,
		"extractions", len(extractions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Extractions: extractions,
		Metadata: map[string]any{
			"model_id":          o.modelID,
			"extraction_passes": tpl.Settings.ExtractionPasses,
			"total_extractions": len(extractions),
			"text_length":       len(text),
		},
		Success: true,
	}
}

func (o *Orchestrator) fail(rid string, start time.Time, err error) Result {
	o.logger.Error("extract.failed",
		"req_id", rid,
		"model", o.modelID,
		"error", err,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Extractions: []Extraction{},
		Metadata:    map[string]any{"error": err.Error()},
		Success:     false,
		Error:       err.Error(),
	}
}
