package assemble

import (
	"strings"
	"testing"

	"product-support-be/pkg/ingest/classify"
	"product-support-be/pkg/ingest/segment"
)

func newTestAssembler(cfg Config) *Assembler {
	return NewAssembler(cfg, classify.NewClassifier(classify.DefaultConfig()))
}

func para(content string, start, end int) segment.Block {
	return segment.Block{Content: content, StartOffset: start, EndOffset: end, Kind: segment.KindParagraph}
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func TestAssembleEmpty(t *testing.T) {
	a := newTestAssembler(DefaultConfig())
	if got := a.Assemble(nil, nil); len(got) != 0 {
		t.Errorf("chunks = %d, want 0", len(got))
	}
}

func TestNumberedStepsNeverSplit(t *testing.T) {
	a := newTestAssembler(Config{TargetTokens: 10, MaxTokens: 10, MinTokens: 1, OverlapTokens: 0})

	blocks := []segment.Block{
		{Content: "WARNING: Disconnect power before servicing.", Kind: segment.KindWarningBlock, StartOffset: 0, EndOffset: 44},
		{Content: "1. Remove cover\n2. Detach wires", Kind: segment.KindNumberedSteps, StartOffset: 46, EndOffset: 77},
	}
	chunks := a.Assemble(blocks, nil)

	var stepChunks []Chunk
	for _, c := range chunks {
		if strings.Contains(c.Content, "Remove cover") {
			stepChunks = append(stepChunks, c)
		}
	}
	if len(stepChunks) != 1 {
		t.Fatalf("step content spread across %d chunks, want 1", len(stepChunks))
	}
	if !strings.Contains(stepChunks[0].Content, "Detach wires") {
		t.Errorf("steps were split: %q", stepChunks[0].Content)
	}
}

func TestOversizedAtomicBlockEmittedWhole(t *testing.T) {
	a := newTestAssembler(Config{TargetTokens: 20, MaxTokens: 20, MinTokens: 1, OverlapTokens: 0})

	var steps []string
	for i := 1; i <= 12; i++ {
		steps = append(steps, "9. tighten the retaining bolt firmly against the frame")
	}
	content := strings.Join(steps, "\n")

	chunks := a.Assemble([]segment.Block{
		{Content: content, Kind: segment.KindNumberedSteps, StartOffset: 0, EndOffset: len(content)},
	}, nil)

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Content != content {
		t.Error("atomic block content was altered")
	}
	if chunks[0].TokenCount <= a.cfg.MaxTokens {
		t.Errorf("expected chunk above max budget, got %d tokens", chunks[0].TokenCount)
	}
}

func TestOversizedParagraphSplitsAtSentences(t *testing.T) {
	a := newTestAssembler(Config{TargetTokens: 30, MaxTokens: 30, MinTokens: 1, OverlapTokens: 0})

	var sentences []string
	for i := 0; i < 12; i++ {
		sentences = append(sentences, "The mounting bracket attaches to the wall with four screws.")
	}
	content := strings.Join(sentences, " ")

	chunks := a.Assemble([]segment.Block{para(content, 0, len(content))}, nil)

	if len(chunks) < 2 {
		t.Fatalf("oversized paragraph produced %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenCount > a.cfg.MaxTokens {
			t.Errorf("chunk %d has %d tokens, exceeds max %d", i, c.TokenCount, a.cfg.MaxTokens)
		}
		if !strings.HasSuffix(strings.TrimSpace(c.Content), ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, c.Content)
		}
	}
}

func TestTokenBounds(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAssembler(cfg)

	var blocks []segment.Block
	offset := 0
	for i := 0; i < 20; i++ {
		content := words(60) + "."
		blocks = append(blocks, para(content, offset, offset+len(content)))
		offset += len(content) + 2
	}
	chunks := a.Assemble(blocks, nil)

	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	for i, c := range chunks {
		if c.TokenCount > cfg.MaxTokens {
			t.Errorf("chunk %d tokens = %d, above max %d", i, c.TokenCount, cfg.MaxTokens)
		}
		if c.TokenCount < cfg.MinTokens {
			t.Errorf("chunk %d tokens = %d, below min %d after merging", i, c.TokenCount, cfg.MinTokens)
		}
		if c.OrderInDocument != i {
			t.Errorf("chunk %d order = %d", i, c.OrderInDocument)
		}
	}
}

func TestMergeUndersizedBackward(t *testing.T) {
	a := newTestAssembler(Config{TargetTokens: 100, MaxTokens: 100, MinTokens: 20, OverlapTokens: 0})

	chunks := a.mergeUndersized([]Chunk{
		{Content: words(40), TokenCount: 53, PageStart: 1, PageEnd: 1, SectionPath: "Installation", ContentType: classify.General},
		{Content: "Short trailing note.", TokenCount: 4, PageStart: 2, PageEnd: 2, SectionPath: "Installation/Notes", ContentType: classify.Warning},
	})

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1 after merge", len(chunks))
	}
	got := chunks[0]
	if got.PageStart != 1 || got.PageEnd != 2 {
		t.Errorf("page range = %d-%d, want 1-2", got.PageStart, got.PageEnd)
	}
	if got.SectionPath != "Installation" {
		t.Errorf("section path = %q, want the earlier chunk's", got.SectionPath)
	}
	if got.ContentType != classify.Warning {
		t.Errorf("content type = %s, want WARNING to win the merge", got.ContentType)
	}
	if !strings.Contains(got.Content, "Short trailing note.") {
		t.Error("merged content missing the undersized chunk text")
	}
}

func TestMergeRespectsCeiling(t *testing.T) {
	a := newTestAssembler(Config{TargetTokens: 100, MaxTokens: 100, MinTokens: 20, OverlapTokens: 0})

	chunks := a.mergeUndersized([]Chunk{
		{Content: words(110), TokenCount: 146},
		{Content: "tiny", TokenCount: 10},
	})
	if len(chunks) != 2 {
		t.Errorf("chunks = %d, want 2: merge would exceed the ceiling", len(chunks))
	}
}

func TestSectionPathFollowsHeadings(t *testing.T) {
	a := newTestAssembler(DefaultConfig())

	blocks := []segment.Block{
		{Content: "Installation", Kind: segment.KindHeading, HeadingLevel: 1, HeadingText: "Installation"},
		{Content: "Electrical", Kind: segment.KindHeading, HeadingLevel: 2, HeadingText: "Electrical"},
		para(words(90)+".", 0, 100),
	}
	chunks := a.Assemble(blocks, nil)

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].SectionPath != "Installation/Electrical" {
		t.Errorf("section path = %q, want Installation/Electrical", chunks[0].SectionPath)
	}
}

func TestOverlapPrefix(t *testing.T) {
	sentence := "The bracket must be mounted to a stud."
	prev := strings.Repeat(sentence+" ", 10)

	got := overlapPrefix(prev, 50)
	if got == "" {
		t.Fatal("expected a non-empty overlap prefix")
	}
	if !strings.HasPrefix(got, "The bracket") {
		t.Errorf("overlap does not start at a sentence boundary: %q", got)
	}

	if got := overlapPrefix("too short", 50); got != "" {
		t.Errorf("overlap on short content = %q, want empty", got)
	}
	if got := overlapPrefix(prev, 0); got != "" {
		t.Errorf("overlap with zero budget = %q, want empty", got)
	}
	if got := overlapPrefix(words(80), 50); got != "" {
		t.Errorf("overlap with no sentence boundary = %q, want empty", got)
	}
}

func TestTokenCountExcludesOverlap(t *testing.T) {
	cfg := Config{TargetTokens: 40, MaxTokens: 40, MinTokens: 1, OverlapTokens: 20}
	a := newTestAssembler(cfg)

	sentence := "Check the valve seal before reassembly every time."
	var blocks []segment.Block
	offset := 0
	for i := 0; i < 6; i++ {
		content := strings.Repeat(sentence+" ", 3)
		content = strings.TrimSpace(content)
		blocks = append(blocks, para(content, offset, offset+len(content)))
		offset += len(content) + 2
	}
	chunks := a.Assemble(blocks, nil)

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want at least 2", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		c := chunks[i]
		if c.TokenCount > cfg.MaxTokens {
			t.Errorf("chunk %d counted tokens = %d: overlap prefix leaked into the budget", i, c.TokenCount)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"three little words", 3},
		{words(100), 133},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%d words) = %d, want %d", len(strings.Fields(tt.text)), got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First part. Second part! Third part? Trailing fragment")
	want := []string{"First part.", "Second part!", "Third part?", "Trailing fragment"}
	if len(got) != len(want) {
		t.Fatalf("sentences = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}
