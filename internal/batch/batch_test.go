package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pdfxtract/constants"
)

func makePDFTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		"a.pdf",
		"b.pdf",
		filepath.Join("sub", "c.PDF"),
		filepath.Join("sub", "deep", "d.pdf"),
		"e.pdf",
		"notes.txt",
		filepath.Join("sub", "image.png"),
	}
	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindPDFFiles(t *testing.T) {
	dir := makePDFTree(t)
	files, err := FindPDFFiles(dir)
	if err != nil {
		t.Fatalf("FindPDFFiles() error = %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("files = %d, want 5 (recursive, pdf only, case-insensitive ext)", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Fatalf("files not sorted: %q before %q", files[i-1], files[i])
		}
	}
}

func TestRun_PerFileIsolation(t *testing.T) {
	dir := makePDFTree(t)
	outDir := t.TempDir()

	process := func(_ context.Context, path string) Outcome {
		base := filepath.Base(path)
		switch base {
		case "c.PDF":
			return Outcome{File: path, Status: constants.RunStatusFailed, Error: "all extraction strategies failed"}
		case "d.pdf":
			panic("boom")
		default:
			return Outcome{File: path, Status: constants.RunStatusSuccess, Extractions: 3, OutputFile: base + ".json"}
		}
	}

	r := NewRunner(process, nil, 0, nil)
	summary, err := r.Run(context.Background(), dir, outDir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Total != 5 || summary.Succeeded != 3 || summary.Failed != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	var panicked *Outcome
	for i := range summary.Outcomes {
		if filepath.Base(summary.Outcomes[i].File) == "d.pdf" {
			panicked = &summary.Outcomes[i]
		}
	}
	if panicked == nil {
		t.Fatal("d.pdf outcome missing")
	}
	if panicked.Status != constants.RunStatusError || panicked.Error == "" {
		t.Errorf("panicking file must become an error outcome, got %+v", panicked)
	}
}

func TestRun_WritesSummaryArtifacts(t *testing.T) {
	dir := makePDFTree(t)
	outDir := t.TempDir()

	process := func(_ context.Context, path string) Outcome {
		return Outcome{File: path, Status: constants.RunStatusSuccess, Extractions: 1}
	}
	r := NewRunner(process, nil, 0, nil)
	if _, err := r.Run(context.Background(), dir, outDir); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "batch_summary.json"))
	if err != nil {
		t.Fatalf("batch_summary.json missing: %v", err)
	}
	var got Summary
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("summary not valid json: %v", err)
	}
	if got.Total != 5 || len(got.Outcomes) != 5 {
		t.Errorf("summary round trip = %+v", got)
	}

	if _, err := os.Stat(filepath.Join(outDir, "batch_summary.xlsx")); err != nil {
		t.Errorf("batch_summary.xlsx missing: %v", err)
	}
}

func TestRun_MaxFilesCap(t *testing.T) {
	dir := makePDFTree(t)
	outDir := t.TempDir()

	var processed []string
	process := func(_ context.Context, path string) Outcome {
		processed = append(processed, path)
		return Outcome{File: path, Status: constants.RunStatusSuccess}
	}
	r := NewRunner(process, nil, 2, nil)
	summary, err := r.Run(context.Background(), dir, outDir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(processed) != 2 || summary.Total != 2 {
		t.Errorf("processed = %d, total = %d, want cap of 2", len(processed), summary.Total)
	}
	// cap takes the first files in sorted order
	if filepath.Base(processed[0]) != "a.pdf" || filepath.Base(processed[1]) != "b.pdf" {
		t.Errorf("capped selection = %v", processed)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	r := NewRunner(func(context.Context, string) Outcome { return Outcome{} }, nil, 0, nil)
	if _, err := r.Run(context.Background(), t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("Run() on a directory without PDFs must fail")
	}
}

func TestRun_CanceledContextStops(t *testing.T) {
	dir := makePDFTree(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	process := func(context.Context, string) Outcome {
		calls++
		cancel() // cancel after the first file
		return Outcome{Status: constants.RunStatusSuccess}
	}
	r := NewRunner(process, nil, 0, nil)
	if _, err := r.Run(ctx, dir, t.TempDir()); err == nil {
		t.Fatal("Run() must surface context cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want processing to stop after cancellation", calls)
	}
}
