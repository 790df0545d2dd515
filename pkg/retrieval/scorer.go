package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Candidate is one chunk already filtered to a single SKU's package,
// optionally narrowed further by document or content type.
type Candidate struct {
	ChunkID       uuid.UUID
	Content       string
	DocumentID    uuid.UUID
	DocumentTitle string
	DocumentType  string
	PageStart     int
	PageEnd       int
	SectionPath   string
	ContentType   string
	Order         int
}

// Result is a scored candidate. KeywordScore is kept as a named signal so a
// vector-similarity signal can be fused in later without reshaping the
// result model.
type Result struct {
	Candidate
	Score        float64
	KeywordScore float64
}

// Ranked is the scorer output: the top-K results padded with zero-score
// entries, plus the raw count of non-zero matches so callers can tell
// "nothing relevant" apart from "K mediocre matches".
type Ranked struct {
	Results []Result
	NonZero int
}

// Config carries the scoring weights and cutoffs.
type Config struct {
	TopK           int
	CoverageWeight float64
	PhraseBonus    float64
	HeadingBonus   float64
}

func DefaultConfig() Config {
	return Config{
		TopK:           5,
		CoverageWeight: 0.5,
		PhraseBonus:    1.5,
		HeadingBonus:   0.2,
	}
}

// affinityCues maps query cue words to the content type they favor and the
// bonus granted when the chunk carries that classification.
type affinityRule struct {
	contentType string
	bonus       float64
	cues        []string
}

var affinityRules = []affinityRule{
	{contentType: "WARNING", bonus: 0.5, cues: []string{"safe", "safety", "danger", "dangerous", "hazard", "shock", "warning", "hurt", "injury"}},
	{contentType: "PROCEDURE", bonus: 0.4, cues: []string{"how", "install", "installation", "setup", "assemble", "replace", "steps", "instructions"}},
	{contentType: "TROUBLESHOOTING", bonus: 0.4, cues: []string{"error", "broken", "fix", "problem", "issue", "working", "wont", "fails", "blinking"}},
	{contentType: "SPECS", bonus: 0.3, cues: []string{"spec", "specs", "specification", "dimension", "dimensions", "voltage", "wattage", "weight", "size"}},
}

// Scorer ranks candidate chunks against a query using term-frequency,
// coverage, phrase and content-type-affinity signals.
type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	if cfg.TopK <= 0 {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Score ranks candidates descending by total score and truncates to top-K,
// padding with zero-score results so downstream confidence gating sees "K
// results, all near-zero" instead of an empty set. Ties keep document/chunk
// insertion order.
func (s *Scorer) Score(query string, candidates []Candidate) Ranked {
	terms := uniqueTerms(tokenize(query))
	phrase := strings.ToLower(strings.TrimSpace(query))

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		r := Result{Candidate: c}
		if len(terms) > 0 {
			r.KeywordScore = keywordScore(terms, c.Content)
			r.Score = r.KeywordScore +
				coverageBonus(terms, c.Content)*s.cfg.CoverageWeight +
				phraseBonus(phrase, c.Content, s.cfg.PhraseBonus) +
				headingBonus(terms, c.Content, s.cfg.HeadingBonus) +
				affinityBonus(query, c.ContentType)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	nonZero := 0
	for _, r := range results {
		if r.Score > 0 {
			nonZero++
		}
	}

	if len(results) > s.cfg.TopK {
		results = results[:s.cfg.TopK]
	}
	if nonZero > len(results) {
		nonZero = len(results)
	}
	return Ranked{Results: results, NonZero: nonZero}
}

// keywordScore sums 1+ln(count) per matched term for diminishing returns on
// repetition, normalized by sqrt of the chunk's word count to suppress the
// length bias toward long chunks.
func keywordScore(terms []string, content string) float64 {
	counts, total := termCounts(content)
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range terms {
		if n := counts[t]; n > 0 {
			sum += 1 + math.Log(float64(n))
		}
	}
	return sum / math.Sqrt(float64(total))
}

// coverageBonus is the fraction of distinct query terms found in the chunk.
func coverageBonus(terms []string, content string) float64 {
	counts, _ := termCounts(content)
	matched := 0
	for _, t := range terms {
		if counts[t] > 0 {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

func phraseBonus(phrase, content string, bonus float64) float64 {
	if phrase == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(content), phrase) {
		return bonus
	}
	return 0
}

// headingBonus rewards query terms appearing in the chunk's first line, a
// proxy for a heading or lead-sentence match.
func headingBonus(terms []string, content string, perTerm float64) float64 {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	counts, _ := termCounts(firstLine)
	bonus := 0.0
	for _, t := range terms {
		if counts[t] > 0 {
			bonus += perTerm
		}
	}
	return bonus
}

// affinityBonus grants a content-type bonus when the query carries domain
// cue words matching the chunk's classification.
func affinityBonus(query, contentType string) float64 {
	queryTokens := wordSplitRe.Split(strings.ToLower(query), -1)
	present := make(map[string]bool, len(queryTokens))
	for _, t := range queryTokens {
		present[t] = true
	}
	for _, rule := range affinityRules {
		if rule.contentType != contentType {
			continue
		}
		for _, cue := range rule.cues {
			if present[cue] {
				return rule.bonus
			}
		}
	}
	return 0
}
