package llm

import (
	"strings"
	"testing"
)

func TestChunkText_FitsInOneChunk(t *testing.T) {
	got := chunkText("short document", 1000)
	if len(got) != 1 || got[0] != "short document" {
		t.Fatalf("chunkText = %#v, want single chunk", got)
	}
}

func TestChunkText_Empty(t *testing.T) {
	if got := chunkText("   \n\n  ", 100); got != nil {
		t.Fatalf("chunkText on blank input = %#v, want nil", got)
	}
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	text := "first paragraph here\n\nsecond paragraph here\n\nthird one"
	got := chunkText(text, 25)
	if len(got) < 2 {
		t.Fatalf("expected multiple chunks, got %d: %#v", len(got), got)
	}
	for i, chunk := range got {
		if len(chunk) > 25 {
			t.Errorf("chunk %d is %d chars, over the limit: %q", i, len(chunk), chunk)
		}
	}
	// no paragraph content lost
	joined := strings.Join(got, "\n\n")
	for _, want := range []string{"first paragraph here", "second paragraph here", "third one"} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunks lost paragraph %q", want)
		}
	}
}

func TestChunkText_PacksSmallParagraphsTogether(t *testing.T) {
	text := "aaa\n\nbbb\n\nccc"
	got := chunkText(text, 100)
	if len(got) != 1 {
		t.Fatalf("small paragraphs should pack into one chunk, got %d", len(got))
	}
	if got[0] != "aaa\n\nbbb\n\nccc" {
		t.Errorf("chunk = %q", got[0])
	}
}

func TestChunkText_HardSplitsOversizedLine(t *testing.T) {
	text := strings.Repeat("x", 95)
	got := chunkText(text, 30)
	if len(got) != 4 {
		t.Fatalf("chunks = %d, want 4 for 95 chars at limit 30", len(got))
	}
	var total int
	for i, chunk := range got {
		if len(chunk) > 30 {
			t.Errorf("chunk %d over limit: %d chars", i, len(chunk))
		}
		total += len(chunk)
	}
	if total != 95 {
		t.Errorf("total chars = %d, want 95", total)
	}
}

func TestChunkText_ZeroLimitMeansNoSplit(t *testing.T) {
	text := strings.Repeat("y", 5000)
	got := chunkText(text, 0)
	if len(got) != 1 {
		t.Fatalf("maxChars<=0 should disable chunking, got %d chunks", len(got))
	}
}
