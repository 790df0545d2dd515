package assemble

import "strings"

// minOverlapWords is the point below which an overlap slice carries too
// little context to be worth prepending.
const minOverlapWords = 5

// overlapPrefix returns a trailing slice of the previous chunk's rendered
// text, bounded by the overlap token budget and trimmed to start at a clean
// sentence boundary. When no boundary exists within a reasonable prefix of
// the slice, or the remainder is too short to be meaningful, it returns ""
// and the chunk is left without a synthetic prefix.
func overlapPrefix(prevContent string, overlapTokens int) string {
	if overlapTokens <= 0 {
		return ""
	}

	words := strings.Fields(prevContent)
	budget := int(float64(overlapTokens) / 1.33)
	if budget <= 0 || len(words) <= budget {
		return ""
	}

	slice := strings.Join(words[len(words)-budget:], " ")

	// Trim to the first sentence start inside the slice; searching only the
	// front half keeps the overlap from degenerating to a few words.
	boundary := sentenceStart(slice, len(slice)/2)
	if boundary < 0 {
		return ""
	}
	trimmed := strings.TrimSpace(slice[boundary:])
	if len(strings.Fields(trimmed)) < minOverlapWords {
		return ""
	}
	return trimmed
}

// sentenceStart finds the index just after the first sentence terminator
// within limit, or -1 when the slice has no clean boundary there.
func sentenceStart(s string, limit int) int {
	for i := 0; i < limit && i+1 < len(s); i++ {
		if (s[i] == '.' || s[i] == '!' || s[i] == '?') && s[i+1] == ' ' {
			return i + 2
		}
	}
	return -1
}
