package ingest

import (
	"strings"

	"product-support-be/pkg/ingest/assemble"
	"product-support-be/pkg/ingest/classify"
	"product-support-be/pkg/ingest/segment"
)

// ParsedDocument is the full ingestion output for one raw document.
type ParsedDocument struct {
	Title          string
	Chunks         []assemble.Chunk
	TotalPages     int
	FigureCaptions []string
	Metadata       map[string]interface{}
}

// Parser runs segmentation, chunk assembly and classification as one
// pipeline. It is a pure CPU-bound transform: safe to share across
// goroutines and to run concurrently across documents.
type Parser struct {
	assembler *assemble.Assembler
}

func NewParser(chunkCfg assemble.Config, classifyCfg classify.Config) *Parser {
	return &Parser{
		assembler: assemble.NewAssembler(chunkCfg, classify.NewClassifier(classifyCfg)),
	}
}

// Parse segments raw text and assembles it into classified chunks. Empty
// input yields a ParsedDocument with zero chunks, never an error.
func (p *Parser) Parse(title, raw string) *ParsedDocument {
	res := segment.Segment(raw)
	locator := segment.NewPageLocator(res.PageBreaks)

	if title == "" {
		title = inferTitle(res)
	}

	return &ParsedDocument{
		Title:          title,
		Chunks:         p.assembler.Assemble(res.Blocks, res.PageBreaks),
		TotalPages:     locator.TotalPages(),
		FigureCaptions: res.FigureCaptions,
		Metadata: map[string]interface{}{
			"block_count":   len(res.Blocks),
			"heading_count": len(res.Headings),
		},
	}
}

// inferTitle falls back to the first detected heading, else "Untitled".
func inferTitle(res segment.Result) string {
	for _, h := range res.Headings {
		if t := strings.TrimSpace(h.Text); t != "" {
			return t
		}
	}
	return "Untitled"
}
