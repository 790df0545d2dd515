package segment

import (
	"regexp"
	"strings"
)

var (
	markedHeadingRe   = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)
	ordinalRe         = regexp.MustCompile(`^(\d+)[.)]\s+\S`)
	bulletRe          = regexp.MustCompile(`^[-*•]\s+\S`)
	warningStartRe    = regexp.MustCompile(`(?i)\b(warning|caution|danger)\b`)
	figureCaptionRe   = regexp.MustCompile(`^(?:Figure|Fig\.)\s+\d+\s*[:.]\s*(.+)$`)
	underlineRowRe    = regexp.MustCompile(`^(={3,}|-{3,})$`)
	allCapsRe         = regexp.MustCompile(`^[A-Z][A-Z0-9 ,&/()'-]*$`)
)

const (
	maxHeadingLen  = 80
	maxCapsLineLen = 60
)

type headingMatch struct {
	level int
	text  string
}

// detectHeading recognizes headings in priority order: marked lines
// (# to ###), underline-style (===/--- on the next line), ALL-CAPS short
// lines preceded by blank or document start, and numbered section headings
// whose numeric depth (capped at 3) sets the level.
func detectHeading(lines []line, i int) (headingMatch, bool) {
	trimmed := strings.TrimSpace(lines[i].text)
	if trimmed == "" {
		return headingMatch{}, false
	}

	if m := markedHeadingRe.FindStringSubmatch(trimmed); m != nil {
		return headingMatch{level: len(m[1]), text: strings.TrimSpace(m[2])}, true
	}

	if i+1 < len(lines) {
		next := strings.TrimSpace(lines[i+1].text)
		if underlineRowRe.MatchString(next) && !isUnderlineRow(trimmed) && len(trimmed) <= maxHeadingLen {
			level := 1
			if next[0] == '-' {
				level = 2
			}
			return headingMatch{level: level, text: trimmed}, true
		}
	}

	if isAllCapsHeading(lines, i, trimmed) {
		return headingMatch{level: 2, text: trimmed}, true
	}

	if m := numberedHeadingRe.FindStringSubmatch(trimmed); m != nil {
		depth := strings.Count(m[1], ".") + 1
		if depth > 3 {
			depth = 3
		}
		// Single-component "1. Text" collides with step markers: only a
		// short line not followed by the next ordinal reads as a heading.
		if depth == 1 {
			if len(trimmed) > maxCapsLineLen || strings.HasSuffix(trimmed, ".") || nextOrdinalFollows(lines, i, m[1]) {
				return headingMatch{}, false
			}
			if !startsUpper(m[2]) {
				return headingMatch{}, false
			}
		}
		return headingMatch{level: depth, text: strings.TrimSpace(m[2])}, true
	}

	return headingMatch{}, false
}

// isAllCapsHeading matches short ALL-CAPS lines preceded by a blank line or
// the start of the document.
func isAllCapsHeading(lines []line, i int, trimmed string) bool {
	if len(trimmed) > maxCapsLineLen || len(trimmed) < 3 {
		return false
	}
	if !allCapsRe.MatchString(trimmed) || !strings.ContainsAny(trimmed, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return false
	}
	// Warning keywords in caps open warning blocks, not sections.
	if warningStartRe.MatchString(trimmed) {
		return false
	}
	if i == 0 {
		return true
	}
	return strings.TrimSpace(lines[i-1].text) == ""
}

// nextOrdinalFollows reports whether the next non-blank line starts with the
// successor ordinal (e.g. "2." after "1."), which marks a step sequence.
func nextOrdinalFollows(lines []line, i int, current string) bool {
	for j := i + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j].text)
		if next == "" {
			continue
		}
		m := ordinalRe.FindStringSubmatch(next)
		return m != nil
	}
	return false
}

func headingAbove(lines []line, i int) bool {
	prev := strings.TrimSpace(lines[i-1].text)
	return prev != "" && !isUnderlineRow(prev)
}

func isUnderlineRow(trimmed string) bool {
	return underlineRowRe.MatchString(trimmed)
}

func isOrdinalLine(trimmed string) bool {
	return ordinalRe.MatchString(trimmed)
}

func isBulletLine(trimmed string) bool {
	return bulletRe.MatchString(trimmed)
}

// isWarningStart reports whether a line opens a warning block. The keyword
// must appear in the leading portion of the line so that passing mentions
// deep inside a sentence do not open a block.
func isWarningStart(trimmed string) bool {
	loc := warningStartRe.FindStringIndex(trimmed)
	return loc != nil && loc[0] <= 20
}

func matchFigureCaption(trimmed string) (string, bool) {
	if m := figureCaptionRe.FindStringSubmatch(trimmed); m != nil {
		return trimmed, true
	}
	return "", false
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}
