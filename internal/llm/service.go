package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"pdfxtract/internal/extract"
)

// Config carries the transport-level knobs for the extraction client.
type Config struct {
	OpenAIBaseURL string
	GeminiBaseURL string
	Temperature   float32
	Timeout       time.Duration
}

// Client implements extract.Service against the OpenAI and Gemini HTTP APIs.
// One Extract call fans the document out into chunks, runs every requested
// pass over every chunk through a bounded worker pool, and merges the results
// in chunk order with duplicates removed.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	// callChunk is the per-chunk provider call; tests swap it out.
	callChunk func(ctx context.Context, req extract.Request, chunk string) ([]extract.ServiceExtraction, error)
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if cfg.GeminiBaseURL == "" {
		cfg.GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	c.callChunk = c.dispatch
	return c
}

type chunkJob struct {
	pass  int
	index int
	text  string
}

// Extract satisfies extract.Service.
func (c *Client) Extract(ctx context.Context, req extract.Request) (extract.Response, error) {
	rid := uuid.New().String()
	start := time.Now()

	passes := req.Passes
	if passes < 1 {
		passes = 1
	}
	workers := req.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	chunks := chunkText(req.Text, req.MaxCharBuffer)
	if len(chunks) == 0 {
		return extract.Response{Extractions: []extract.ServiceExtraction{}}, nil
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", req.ModelID,
		"backend", string(req.Backend),
		"chunks", len(chunks),
		"passes", passes,
		"workers", workers,
	)

	jobs := make([]chunkJob, 0, len(chunks)*passes)
	for p := 0; p < passes; p++ {
		for i, chunk := range chunks {
			jobs = append(jobs, chunkJob{pass: p, index: i, text: chunk})
		}
	}

	results := make([][]extract.ServiceExtraction, len(jobs))
	errs := make([]error, len(jobs))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(slot int, job chunkJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[slot] = err
				return
			}
			items, err := c.callChunk(ctx, req, job.text)
			if err != nil {
				c.logger.Warn("llm.chunk.failed",
					"req_id", rid, "pass", job.pass+1, "chunk", job.index+1, "error", err)
				errs[slot] = fmt.Errorf("pass %d chunk %d: %w", job.pass+1, job.index+1, err)
				return
			}
			results[slot] = items
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return extract.Response{}, err
		}
	}

	// Jobs were laid out pass-major and chunk-ordered, so appending in slot
	// order keeps document order within each pass and passes in sequence.
	var merged []extract.ServiceExtraction
	for _, items := range results {
		merged = append(merged, items...)
	}
	deduped := dedupeExtractions(merged)

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"model", req.ModelID,
		"raw", len(merged),
		"unique", len(deduped),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return extract.Response{Extractions: deduped}, nil
}

func (c *Client) dispatch(ctx context.Context, req extract.Request, chunk string) ([]extract.ServiceExtraction, error) {
	prompt, err := buildUserPrompt(req.Prompt, req.Examples, chunk)
	if err != nil {
		return nil, err
	}
	switch req.Backend {
	case extract.BackendOpenAI:
		return c.callOpenAI(ctx, req, prompt)
	default:
		return c.callGemini(ctx, req, prompt)
	}
}
