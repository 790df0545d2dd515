package assemble

import (
	"strings"

	"product-support-be/pkg/ingest/classify"
	"product-support-be/pkg/ingest/segment"
)

// Config carries the token budgets for one assembly run. Budgets are
// explicit parameters rather than package constants so per-deployment
// tuning stays a configuration concern.
type Config struct {
	TargetTokens  int // soft flush point: keep chunks near this size
	MaxTokens     int // hard ceiling for multi-block chunks
	MinTokens     int // chunks below this are merged backward
	OverlapTokens int // budget for the inter-chunk overlap prefix
}

func DefaultConfig() Config {
	return Config{
		TargetTokens:  350,
		MaxTokens:     500,
		MinTokens:     80,
		OverlapTokens: 50,
	}
}

// mergeCeilingFactor caps backward merges at this multiple of MaxTokens.
const mergeCeilingFactor = 1.5

// Chunk is a bounded, classified, citable span of document text: the atomic
// unit of retrieval. TokenCount covers the chunk's own content; the overlap
// prefix is excluded from budget accounting.
type Chunk struct {
	Content         string
	PageStart       int
	PageEnd         int
	SectionPath     string
	ContentType     classify.ContentType
	TokenCount      int
	OrderInDocument int
}

// Assembler packs segmented blocks into token-budgeted chunks.
type Assembler struct {
	cfg        Config
	classifier *classify.Classifier
}

func NewAssembler(cfg Config, classifier *classify.Classifier) *Assembler {
	if cfg.MaxTokens <= 0 {
		cfg = DefaultConfig()
	}
	if cfg.TargetTokens <= 0 || cfg.TargetTokens > cfg.MaxTokens {
		cfg.TargetTokens = cfg.MaxTokens
	}
	return &Assembler{cfg: cfg, classifier: classifier}
}

// pending tracks the chunk being accumulated: its blocks plus the section
// path and offsets captured when the first block arrived.
type pending struct {
	parts       []string
	tokens      int
	startOffset int
	endOffset   int
	sectionPath string
}

// rawChunk is a chunk before classification, merging and overlap.
type rawChunk struct {
	content     string
	startOffset int
	endOffset   int
	sectionPath string
	tokens      int
	atomic      bool // single oversized atomic block, exempt from budgets
}

// Assemble packs blocks into chunks. Heading blocks contribute no content
// but drive the section-path breadcrumb. Atomic blocks (numbered steps,
// warnings) are never split: an oversized one becomes its own chunk whole.
func (a *Assembler) Assemble(blocks []segment.Block, pageBreaks []segment.PageBreak) []Chunk {
	locator := segment.NewPageLocator(pageBreaks)
	paths := segment.NewSectionPathBuilder()

	var raw []rawChunk
	var cur pending

	flush := func() {
		if len(cur.parts) == 0 {
			return
		}
		content := strings.Join(cur.parts, "\n\n")
		raw = append(raw, rawChunk{
			content:     content,
			startOffset: cur.startOffset,
			endOffset:   cur.endOffset,
			sectionPath: cur.sectionPath,
			tokens:      EstimateTokens(content),
		})
		cur = pending{}
	}

	for _, b := range blocks {
		if b.Kind == segment.KindHeading {
			flush()
			paths.Push(segment.Heading{Level: b.HeadingLevel, Text: b.HeadingText, Offset: b.StartOffset})
			continue
		}

		tokens := EstimateTokens(b.Content)
		atomic := b.Kind == segment.KindNumberedSteps || b.Kind == segment.KindWarningBlock

		if tokens > a.cfg.MaxTokens {
			flush()
			if atomic {
				// Preserved whole even above the ceiling.
				raw = append(raw, rawChunk{
					content:     b.Content,
					startOffset: b.StartOffset,
					endOffset:   b.EndOffset,
					sectionPath: paths.Path(),
					tokens:      tokens,
					atomic:      true,
				})
				continue
			}
			// Plain paragraphs are the only blocks eligible for sub-splitting.
			for _, piece := range a.splitParagraph(b.Content) {
				raw = append(raw, rawChunk{
					content:     piece,
					startOffset: b.StartOffset,
					endOffset:   b.EndOffset,
					sectionPath: paths.Path(),
					tokens:      EstimateTokens(piece),
				})
			}
			continue
		}

		if cur.tokens+tokens > a.cfg.MaxTokens {
			flush()
		}
		if len(cur.parts) == 0 {
			cur.startOffset = b.StartOffset
			cur.sectionPath = paths.Path()
		}
		cur.parts = append(cur.parts, b.Content)
		cur.tokens += tokens
		cur.endOffset = b.EndOffset

		// Soft early flush keeps chunks near target size instead of maxed out.
		if cur.tokens >= a.cfg.TargetTokens {
			flush()
		}
	}
	flush()

	chunks := a.finalize(raw, locator)
	return chunks
}

// splitParagraph splits an oversized paragraph at sentence boundaries,
// greedily packing sentences up to the maximum budget.
func (a *Assembler) splitParagraph(text string) []string {
	sentences := splitSentences(text)
	var pieces []string
	var current strings.Builder
	currentTokens := 0

	for _, sent := range sentences {
		sentTokens := EstimateTokens(sent)
		if currentTokens+sentTokens > a.cfg.MaxTokens && currentTokens > 0 {
			pieces = append(pieces, current.String())
			current.Reset()
			currentTokens = 0
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentTokens += sentTokens
	}
	if currentTokens > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}

// finalize classifies, merges undersized chunks backward, applies overlap
// prefixes and assigns page ranges and document order.
func (a *Assembler) finalize(raw []rawChunk, locator *segment.PageLocator) []Chunk {
	if len(raw) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, len(raw))
	for _, rc := range raw {
		chunks = append(chunks, Chunk{
			Content:     rc.content,
			PageStart:   locator.PageAt(rc.startOffset),
			PageEnd:     locator.PageAt(rc.endOffset),
			SectionPath: rc.sectionPath,
			ContentType: a.classifier.Classify(rc.content),
			TokenCount:  rc.tokens,
		})
	}

	chunks = a.mergeUndersized(chunks)

	// Overlap prefixes come last so merged content is what gets sliced.
	for i := len(chunks) - 1; i >= 1; i-- {
		if overlap := overlapPrefix(chunks[i-1].Content, a.cfg.OverlapTokens); overlap != "" {
			chunks[i].Content = overlap + "\n\n" + chunks[i].Content
		}
	}

	for i := range chunks {
		chunks[i].OrderInDocument = i
	}
	return chunks
}

// mergeUndersized folds chunks below the minimum budget into the previous
// chunk (never forward), provided the merge stays under 1.5x the maximum.
// The earlier chunk keeps its page start and section path; the later chunk
// contributes its page end; content type follows the fixed priority order.
func (a *Assembler) mergeUndersized(chunks []Chunk) []Chunk {
	ceiling := int(float64(a.cfg.MaxTokens) * mergeCeilingFactor)
	out := make([]Chunk, 0, len(chunks))

	for _, c := range chunks {
		if len(out) == 0 || c.TokenCount >= a.cfg.MinTokens {
			out = append(out, c)
			continue
		}
		prev := &out[len(out)-1]
		if prev.TokenCount+c.TokenCount > ceiling {
			out = append(out, c)
			continue
		}
		prev.Content = prev.Content + "\n\n" + c.Content
		prev.TokenCount += c.TokenCount
		prev.PageEnd = c.PageEnd
		prev.ContentType = classify.HigherPriority(prev.ContentType, c.ContentType)
	}
	return out
}
