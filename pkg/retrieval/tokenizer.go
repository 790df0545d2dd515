package retrieval

import (
	"regexp"
	"strings"
)

var wordSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

// stopWords are dropped from queries before scoring. The set is small and
// fixed: retrieval quality here comes from coverage and affinity bonuses,
// not from aggressive linguistic normalization.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"be": true, "to": true, "of": true, "in": true, "on": true, "at": true,
	"it": true, "my": true, "do": true, "does": true, "can": true, "i": true,
	"you": true, "for": true, "with": true, "and": true, "or": true,
	"what": true, "how": true, "why": true, "when": true, "this": true,
	"that": true,
}

// tokenize lowercases, splits on non-alphanumerics and drops single-character
// tokens and stop words. An empty result means the query cannot match.
func tokenize(text string) []string {
	parts := wordSplitRe.Split(strings.ToLower(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < 2 || stopWords[p] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// termCounts tokenizes chunk text once and returns per-token occurrence
// counts plus the total word count, so each query term is matched whole-word
// and case-insensitively.
func termCounts(text string) (map[string]int, int) {
	parts := wordSplitRe.Split(strings.ToLower(text), -1)
	counts := make(map[string]int, len(parts))
	total := 0
	for _, p := range parts {
		if p == "" {
			continue
		}
		total++
		counts[p]++
	}
	return counts, total
}

// uniqueTerms preserves first-seen order.
func uniqueTerms(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
