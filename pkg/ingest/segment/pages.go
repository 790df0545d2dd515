package segment

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	pageWordRe = regexp.MustCompile(`(?i)^page\s+(\d+)$`)
	pageDashRe = regexp.MustCompile(`^-\s*(\d+)\s*-$`)
	bareNumRe  = regexp.MustCompile(`^\d+$`)
)

// minBareNumberBreaks guards the weakest page-number source: isolated numeric
// lines are accepted only when at least this many occur and the numbers
// strictly increase.
const minBareNumberBreaks = 3

// detectPageBreaks tries page sources in order of reliability: form-feed
// separators, "Page N" / "- N -" marker lines, then bare numeric lines.
func detectPageBreaks(lines []line) []PageBreak {
	if breaks := formFeedBreaks(lines); len(breaks) > 0 {
		return breaks
	}
	if breaks := markerBreaks(lines); len(breaks) > 0 {
		return breaks
	}
	return bareNumberBreaks(lines)
}

func formFeedBreaks(lines []line) []PageBreak {
	var breaks []PageBreak
	page := 1
	for _, ln := range lines {
		idx := strings.IndexByte(ln.text, '\f')
		if idx < 0 {
			continue
		}
		page++
		breaks = append(breaks, PageBreak{PageNumber: page, Offset: ln.offset + idx})
	}
	return breaks
}

func markerBreaks(lines []line) []PageBreak {
	var breaks []PageBreak
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		var num string
		if m := pageWordRe.FindStringSubmatch(trimmed); m != nil {
			num = m[1]
		} else if m := pageDashRe.FindStringSubmatch(trimmed); m != nil {
			num = m[1]
		} else {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			continue
		}
		breaks = append(breaks, PageBreak{PageNumber: n, Offset: ln.offset})
	}
	return breaks
}

// bareNumberBreaks accepts isolated numeric lines as page markers only when
// they form a strictly increasing sequence with enough occurrences, which
// guards against stray numbers in the text.
func bareNumberBreaks(lines []line) []PageBreak {
	var breaks []PageBreak
	prev := 0
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if !bareNumRe.MatchString(trimmed) {
			continue
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil || n <= prev {
			return nil
		}
		prev = n
		breaks = append(breaks, PageBreak{PageNumber: n, Offset: ln.offset})
	}
	if len(breaks) < minBareNumberBreaks {
		return nil
	}
	return breaks
}

// pageMarkerLines flags lines consumed by page-break detection so the block
// scanner can skip them.
func pageMarkerLines(lines []line) map[int]bool {
	marks := make(map[int]bool)
	numeric := bareNumberBreaks(lines) != nil
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if pageWordRe.MatchString(trimmed) || pageDashRe.MatchString(trimmed) {
			marks[i] = true
		}
		if numeric && bareNumRe.MatchString(trimmed) {
			marks[i] = true
		}
	}
	return marks
}

// PageLocator answers "which page is this offset on" from a detected break
// list. Offsets before the first break default to page 1.
type PageLocator struct {
	breaks []PageBreak
}

func NewPageLocator(breaks []PageBreak) *PageLocator {
	return &PageLocator{breaks: breaks}
}

// PageAt returns the page of the nearest preceding break, defaulting to 1
// when no break precedes the offset or no breaks were detected.
func (l *PageLocator) PageAt(offset int) int {
	page := 1
	for _, b := range l.breaks {
		if b.Offset > offset {
			break
		}
		page = b.PageNumber
	}
	return page
}

// TotalPages returns the highest page number seen, at minimum 1.
func (l *PageLocator) TotalPages() int {
	if len(l.breaks) == 0 {
		return 1
	}
	max := 1
	for _, b := range l.breaks {
		if b.PageNumber > max {
			max = b.PageNumber
		}
	}
	return max
}
