package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pdfxtract/constants"
	"pdfxtract/internal/extract"
	"pdfxtract/internal/history"
	"pdfxtract/internal/pdftext"
	"pdfxtract/internal/template"
)

type fakeTexts struct {
	doc pdftext.Document
	err error
}

func (f *fakeTexts) ExtractText(context.Context, string) (pdftext.Document, error) {
	return f.doc, f.err
}

type fakeRunner struct {
	res     extract.Result
	gotText string
}

func (f *fakeRunner) Run(_ context.Context, text string, _ *template.Template) extract.Result {
	f.gotText = text
	return f.res
}

func (f *fakeRunner) ModelID() string { return "gemini-2.5-flash" }

type fakeSink struct {
	ok         bool
	persisted  []string
	visualized []string
}

func (f *fakeSink) Persist(_ extract.Result, dest, _ string) bool {
	f.persisted = append(f.persisted, dest)
	return f.ok
}

func (f *fakeSink) Visualize(_ extract.Result, outputPath string) (string, string) {
	f.visualized = append(f.visualized, outputPath)
	return outputPath + ".jsonl", outputPath + ".html"
}

type fakeRecorder struct {
	runs []history.Run
}

func (f *fakeRecorder) Record(_ context.Context, run history.Run) {
	f.runs = append(f.runs, run)
}

func goodDoc() pdftext.Document {
	return pdftext.Document{Text: "--- Page 1 ---\nhello", PageCount: 1, Method: pdftext.StrategyPoppler}
}

func goodResult() extract.Result {
	return extract.Result{
		Extractions: []extract.Extraction{{Class: "vendor", Text: "Acme"}},
		Metadata:    map[string]any{"model_id": "gemini-2.5-flash"},
		Success:     true,
	}
}

func invoiceOpts() RunOptions {
	return RunOptions{
		Template: &template.Template{Name: "invoice", Settings: template.Settings{ExtractionPasses: 1}},
		Format:   "json",
	}
}

func TestProcessFile_Success(t *testing.T) {
	texts := &fakeTexts{doc: goodDoc()}
	run := &fakeRunner{res: goodResult()}
	sk := &fakeSink{ok: true}
	rec := &fakeRecorder{}
	p := NewPipeline(texts, run, sk, rec, nil)

	out := p.ProcessFile(context.Background(), filepath.Join("docs", "bill.pdf"), invoiceOpts())
	if out.Status != constants.RunStatusSuccess {
		t.Fatalf("status = %q, error = %q", out.Status, out.Error)
	}
	if out.Extractions != 1 {
		t.Errorf("extractions = %d", out.Extractions)
	}
	want := filepath.Join("docs", "bill_invoice_extracted.json")
	if out.OutputFile != want {
		t.Errorf("output = %q, want %q", out.OutputFile, want)
	}
	if run.gotText != "--- Page 1 ---\nhello" {
		t.Errorf("runner got text %q", run.gotText)
	}
	if len(sk.visualized) != 0 {
		t.Error("visualize must be opt-in")
	}
	if len(rec.runs) != 1 || rec.runs[0].Status != constants.RunStatusSuccess {
		t.Fatalf("history runs = %+v", rec.runs)
	}
	if rec.runs[0].TextMethod != "pdftotext" || rec.runs[0].Template != "invoice" {
		t.Errorf("history run = %+v", rec.runs[0])
	}
}

func TestProcessFile_TextExtractionFails(t *testing.T) {
	texts := &fakeTexts{err: errors.New("all extraction strategies failed")}
	run := &fakeRunner{res: goodResult()}
	sk := &fakeSink{ok: true}
	p := NewPipeline(texts, run, sk, nil, nil)

	out := p.ProcessFile(context.Background(), "x.pdf", invoiceOpts())
	if out.Status != constants.RunStatusFailed {
		t.Fatalf("status = %q", out.Status)
	}
	if out.Error == "" {
		t.Error("failed outcome must carry the error")
	}
	if len(sk.persisted) != 0 {
		t.Error("nothing should be persisted when text extraction fails")
	}
}

func TestProcessFile_ExtractionFailureIsFailedStatus(t *testing.T) {
	texts := &fakeTexts{doc: goodDoc()}
	run := &fakeRunner{res: extract.Result{Success: false, Error: "missing credential", Extractions: []extract.Extraction{}}}
	sk := &fakeSink{ok: true}
	p := NewPipeline(texts, run, sk, nil, nil)

	out := p.ProcessFile(context.Background(), "x.pdf", invoiceOpts())
	if out.Status != constants.RunStatusFailed || out.Error != "missing credential" {
		t.Fatalf("outcome = %+v", out)
	}
	if len(sk.persisted) != 0 {
		t.Error("failed results must not be persisted")
	}
}

func TestProcessFile_SaveFailure(t *testing.T) {
	texts := &fakeTexts{doc: goodDoc()}
	run := &fakeRunner{res: goodResult()}
	sk := &fakeSink{ok: false}
	rec := &fakeRecorder{}
	p := NewPipeline(texts, run, sk, rec, nil)

	out := p.ProcessFile(context.Background(), "x.pdf", invoiceOpts())
	if out.Status != constants.RunStatusSaveFailed {
		t.Fatalf("status = %q", out.Status)
	}
	if out.Extractions != 1 {
		t.Error("save_failed outcome keeps the extraction count")
	}
	if rec.runs[0].Status != constants.RunStatusSaveFailed {
		t.Errorf("history status = %q", rec.runs[0].Status)
	}
}

func TestProcessFile_VisualizeSkippedForHTMLFormat(t *testing.T) {
	texts := &fakeTexts{doc: goodDoc()}
	run := &fakeRunner{res: goodResult()}
	sk := &fakeSink{ok: true}
	p := NewPipeline(texts, run, sk, nil, nil)

	opts := invoiceOpts()
	opts.Visualize = true
	opts.Format = "html"
	p.ProcessFile(context.Background(), "x.pdf", opts)
	if len(sk.visualized) != 0 {
		t.Error("html format already renders a page; a second visualize pass is redundant")
	}

	opts.Format = "json"
	p.ProcessFile(context.Background(), "x.pdf", opts)
	if len(sk.visualized) != 1 {
		t.Error("visualize must run for non-html formats")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		template  string
		format    string
		outputDir string
		want      string
	}{
		{
			name:     "next to input",
			input:    filepath.Join("in", "report.pdf"),
			template: "invoice", format: "json",
			want: filepath.Join("in", "report_invoice_extracted.json"),
		},
		{
			name:     "explicit output dir",
			input:    filepath.Join("in", "report.pdf"),
			template: "resume", format: "csv", outputDir: "out",
			want: filepath.Join("out", "report_resume_extracted.csv"),
		},
		{
			name:     "format normalized",
			input:    "doc.pdf",
			template: "invoice", format: ".JSONL",
			want: "doc_invoice_extracted.jsonl",
		},
		{
			name:     "unsafe stem characters sanitized",
			input:    "we?ird.pdf",
			template: "invoice", format: "json",
			want: "we_ird_invoice_extracted.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultOutputPath(tt.input, tt.template, tt.format, tt.outputDir)
			if got != tt.want {
				t.Errorf("DefaultOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEstimateProcessingTime(t *testing.T) {
	if got := EstimateProcessingTime(1000, 1); got != 2*time.Second {
		t.Errorf("1k chars, 1 pass = %v, want 2s", got)
	}
	if got := EstimateProcessingTime(5000, 2); got != 20*time.Second {
		t.Errorf("5k chars, 2 passes = %v, want 20s", got)
	}
	if got := EstimateProcessingTime(10, 1); got != time.Second {
		t.Errorf("tiny input = %v, want 1s floor", got)
	}
}
