package segment

import (
	"strings"
)

// BlockKind identifies the semantic kind of a text block.
type BlockKind string

const (
	KindParagraph     BlockKind = "paragraph"
	KindList          BlockKind = "list"
	KindNumberedSteps BlockKind = "numbered_steps"
	KindWarningBlock  BlockKind = "warning_block"
	KindHeading       BlockKind = "heading"
)

// Block is a maximal span of text sharing one semantic kind.
// Blocks of kind numbered_steps or warning_block are atomic: downstream
// chunking must never split them unless a single block alone exceeds the
// hard chunk ceiling.
type Block struct {
	Content      string
	StartOffset  int
	EndOffset    int
	Kind         BlockKind
	HeadingLevel int    // set for heading blocks only (1-3)
	HeadingText  string // set for heading blocks only
}

// Heading is a detected section heading.
type Heading struct {
	Level  int // 1-3
	Text   string
	Offset int
}

// PageBreak marks the offset at which a page begins.
type PageBreak struct {
	PageNumber int
	Offset     int
}

// Result is the full output of segmenting one raw document.
type Result struct {
	Blocks         []Block
	Headings       []Heading
	PageBreaks     []PageBreak
	FigureCaptions []string
}

// line is an internal view of one source line with its byte offset.
type line struct {
	text   string
	offset int
}

// Segment splits raw text into atomic semantic blocks and detects page
// boundaries, heading hierarchy and figure captions. Empty or degenerate
// input yields an empty result, never an error: ambiguous formatting
// degrades to paragraph blocks.
func Segment(raw string) Result {
	res := Result{}
	if strings.TrimSpace(raw) == "" {
		return res
	}

	lines := splitLines(raw)
	res.PageBreaks = detectPageBreaks(lines)
	pageMarker := pageMarkerLines(lines)

	var (
		cur      []string
		curKind  BlockKind
		curStart int
		curEnd   int
	)

	flush := func() {
		if len(cur) == 0 {
			return
		}
		res.Blocks = append(res.Blocks, Block{
			Content:     strings.Join(cur, "\n"),
			StartOffset: curStart,
			EndOffset:   curEnd,
			Kind:        curKind,
		})
		cur = nil
	}

	appendLine := func(ln line, kind BlockKind) {
		if len(cur) == 0 {
			curStart = ln.offset
			curKind = kind
		}
		cur = append(cur, strings.TrimRight(ln.text, " \t"))
		curEnd = ln.offset + len(ln.text)
	}

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		trimmed := strings.TrimSpace(ln.text)

		// Blank lines always terminate the running block.
		if trimmed == "" {
			flush()
			continue
		}

		// Page markers are document furniture, not content.
		if pageMarker[i] {
			flush()
			continue
		}

		// Figure captions are extracted as metadata, not emitted as blocks.
		if caption, ok := matchFigureCaption(trimmed); ok {
			flush()
			res.FigureCaptions = append(res.FigureCaptions, caption)
			continue
		}

		// Underline rows belong to the heading on the previous line.
		if isUnderlineRow(trimmed) && i > 0 && headingAbove(lines, i) {
			continue
		}

		// A block never spans a heading line.
		if h, ok := detectHeading(lines, i); ok {
			flush()
			res.Headings = append(res.Headings, Heading{Level: h.level, Text: h.text, Offset: ln.offset})
			res.Blocks = append(res.Blocks, Block{
				Content:      trimmed,
				StartOffset:  ln.offset,
				EndOffset:    ln.offset + len(ln.text),
				Kind:         KindHeading,
				HeadingLevel: h.level,
				HeadingText:  h.text,
			})
			continue
		}

		switch {
		case curKind == KindWarningBlock && len(cur) > 0:
			// Warning blocks run until a blank line.
			appendLine(ln, KindWarningBlock)

		case isWarningStart(trimmed):
			flush()
			appendLine(ln, KindWarningBlock)

		case isOrdinalLine(trimmed):
			if curKind != KindNumberedSteps {
				flush()
			}
			appendLine(ln, KindNumberedSteps)

		case curKind == KindNumberedSteps && len(cur) > 0 && isStepContinuation(ln.text):
			appendLine(ln, KindNumberedSteps)

		case isBulletLine(trimmed):
			if curKind != KindList {
				flush()
			}
			appendLine(ln, KindList)

		default:
			if curKind != KindParagraph {
				flush()
			}
			appendLine(ln, KindParagraph)
		}
	}
	flush()

	return res
}

// splitLines breaks raw text into lines while tracking each line's byte
// offset in the original string. Carriage returns are stripped; form feeds
// are kept so page detection can see them.
func splitLines(raw string) []line {
	var out []line
	offset := 0
	for {
		idx := strings.IndexByte(raw[offset:], '\n')
		if idx < 0 {
			out = append(out, line{text: strings.TrimSuffix(raw[offset:], "\r"), offset: offset})
			break
		}
		out = append(out, line{text: strings.TrimSuffix(raw[offset:offset+idx], "\r"), offset: offset})
		offset += idx + 1
		if offset >= len(raw) {
			break
		}
	}
	return out
}

// isStepContinuation reports whether a line continues a numbered step:
// indented text or a nested bullet under the current step.
func isStepContinuation(text string) bool {
	if text == "" {
		return false
	}
	if text[0] == ' ' || text[0] == '\t' {
		return strings.TrimSpace(text) != ""
	}
	return isBulletLine(strings.TrimSpace(text))
}
