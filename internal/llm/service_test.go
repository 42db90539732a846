package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"pdfxtract/internal/extract"
	"pdfxtract/internal/template"
)

func testRequest(text string, passes, workers, buffer int) extract.Request {
	return extract.Request{
		Text:    text,
		Prompt:  "Extract fields.",
		ModelID: "gemini-2.5-flash",
		Backend: extract.BackendGemini,
		Examples: []template.Example{
			{Text: "ex", Extractions: []template.Extraction{{Class: "k", Text: "v"}}},
		},
		Passes:        passes,
		MaxWorkers:    workers,
		MaxCharBuffer: buffer,
		APIKey:        "key",
	}
}

func TestExtract_MergesChunksInOrder(t *testing.T) {
	c := NewClient(Config{}, nil)
	c.callChunk = func(_ context.Context, _ extract.Request, chunk string) ([]extract.ServiceExtraction, error) {
		return []extract.ServiceExtraction{{ExtractionClass: "para", ExtractionText: chunk}}, nil
	}

	resp, err := c.Extract(context.Background(), testRequest("alpha\n\nbeta\n\ngamma", 1, 2, 6))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(resp.Extractions) != 3 {
		t.Fatalf("extractions = %d, want one per chunk", len(resp.Extractions))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if resp.Extractions[i].ExtractionText != want {
			t.Errorf("extraction %d = %q, want %q (document order)", i, resp.Extractions[i].ExtractionText, want)
		}
	}
}

func TestExtract_MultiPassDeduplicates(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := NewClient(Config{}, nil)
	c.callChunk = func(_ context.Context, _ extract.Request, chunk string) ([]extract.ServiceExtraction, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return []extract.ServiceExtraction{{ExtractionClass: "text", ExtractionText: chunk}}, nil
	}

	resp, err := c.Extract(context.Background(), testRequest("stable text", 3, 4, 0))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("provider calls = %d, want one per pass", calls)
	}
	if len(resp.Extractions) != 1 {
		t.Errorf("extractions = %d, identical pass results must collapse to one", len(resp.Extractions))
	}
}

func TestExtract_ChunkErrorFailsRequest(t *testing.T) {
	c := NewClient(Config{}, nil)
	c.callChunk = func(_ context.Context, _ extract.Request, chunk string) ([]extract.ServiceExtraction, error) {
		if chunk == "beta" {
			return nil, errors.New("rate limited")
		}
		return nil, nil
	}

	_, err := c.Extract(context.Background(), testRequest("alpha\n\nbeta", 1, 2, 5))
	if err == nil {
		t.Fatal("Extract() error = nil, want chunk failure surfaced")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %v, should wrap the chunk error", err)
	}
}

func TestExtract_HonorsWorkerBound(t *testing.T) {
	var mu sync.Mutex
	inflight, peak := 0, 0
	c := NewClient(Config{}, nil)
	c.callChunk = func(_ context.Context, _ extract.Request, _ string) ([]extract.ServiceExtraction, error) {
		mu.Lock()
		inflight++
		if inflight > peak {
			peak = inflight
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			inflight--
			mu.Unlock()
		}()
		return nil, nil
	}

	var paras []string
	for i := 0; i < 20; i++ {
		paras = append(paras, fmt.Sprintf("paragraph %02d", i))
	}
	if _, err := c.Extract(context.Background(), testRequest(strings.Join(paras, "\n\n"), 1, 3, 12)); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if peak > 3 {
		t.Errorf("peak concurrency = %d, want at most 3", peak)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	c := NewClient(Config{}, nil)
	c.callChunk = func(_ context.Context, _ extract.Request, _ string) ([]extract.ServiceExtraction, error) {
		t.Fatal("provider must not be called for empty text")
		return nil, nil
	}
	resp, err := c.Extract(context.Background(), testRequest("  \n ", 1, 1, 100))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(resp.Extractions) != 0 {
		t.Errorf("extractions = %d, want none", len(resp.Extractions))
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	c := NewClient(Config{}, nil)
	c.callChunk = func(ctx context.Context, _ extract.Request, _ string) ([]extract.ServiceExtraction, error) {
		return nil, ctx.Err()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Extract(ctx, testRequest("text", 1, 1, 100)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Extract() error = %v, want context.Canceled", err)
	}
}
