package classify

import "regexp"

// ContentType labels what kind of manual content a chunk carries.
type ContentType string

const (
	Procedure       ContentType = "PROCEDURE"
	Warning         ContentType = "WARNING"
	Specs           ContentType = "SPECS"
	Troubleshooting ContentType = "TROUBLESHOOTING"
	General         ContentType = "GENERAL"
)

// MergePriority orders content types for merge decisions: when two chunks
// combine, the higher-priority type wins.
var MergePriority = []ContentType{Warning, Procedure, Troubleshooting, Specs, General}

// HigherPriority returns the winner between two content types under the
// fixed merge priority.
func HigherPriority(a, b ContentType) ContentType {
	for _, t := range MergePriority {
		if a == t || b == t {
			return t
		}
	}
	return General
}

// Config tunes the classifier. WarningThreshold is the number of warning
// pattern matches at which a chunk is classified WARNING outright,
// regardless of competing signals.
type Config struct {
	WarningThreshold int
}

func DefaultConfig() Config {
	return Config{WarningThreshold: 2}
}

// scorer is one independent pattern family. Each scorer is a pure function
// of the text so families can be unit-tested and replaced in isolation.
type scorer struct {
	contentType ContentType
	patterns    []*regexp.Regexp
}

func (s scorer) score(text string) int {
	total := 0
	for _, p := range s.patterns {
		total += len(p.FindAllStringIndex(text, -1))
	}
	return total
}

var warningScorer = scorer{
	contentType: Warning,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(warning|caution|danger|hazard)\b`),
		regexp.MustCompile(`(?i)\b(do not|never|must not)\b`),
		regexp.MustCompile(`(?i)\brisk of\b`),
		regexp.MustCompile(`(?i)\b(electric shock|electrocution|serious injury|flammable|burn hazard)\b`),
	},
}

var procedureScorer = scorer{
	contentType: Procedure,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*\d+[.)]\s`),
		regexp.MustCompile(`(?i)\bstep\s+\d+\b`),
		regexp.MustCompile(`(?i)\b(install(ation)?|assembl[ey]|attach|connect|insert|mount|tighten|unscrew|align)\b`),
		regexp.MustCompile(`(?i)\bhow to\b`),
	},
}

var specsScorer = scorer{
	contentType: Specs,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(specification|dimension|voltage|wattage|amperage|frequency|capacity|clearance)s?\b`),
		regexp.MustCompile(`(?i)\b(model|serial)\s+number\b`),
		regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s?(mm|cm|in|ft|kg|lbs?|v|w|hz|a|db)\b`),
	},
}

var troubleshootingScorer = scorer{
	contentType: Troubleshooting,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\btroubleshoot(ing)?\b`),
		regexp.MustCompile(`(?i)\b(problem|issue|error|fault|malfunction)\b`),
		regexp.MustCompile(`(?i)\b(not working|won'?t|doesn'?t|fails? to|blinking|no power)\b`),
		regexp.MustCompile(`(?i)\b(check that|make sure|verify)\b`),
	},
}

// nonWarningOrder is the tie-break order among competing families when no
// family dominates: earlier entries win at equal score.
var nonWarningOrder = []scorer{procedureScorer, troubleshootingScorer, specsScorer, warningScorer}

// Classifier assigns a content type to chunk text by scoring independent
// pattern families and reducing with a fixed priority.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	if cfg.WarningThreshold <= 0 {
		cfg.WarningThreshold = DefaultConfig().WarningThreshold
	}
	return &Classifier{cfg: cfg}
}

// Classify returns the content type for a chunk of text. Warning signals
// dominate: crossing the warning threshold yields WARNING outright.
// Otherwise the highest-scoring family above zero wins, else GENERAL.
func (c *Classifier) Classify(text string) ContentType {
	if text == "" {
		return General
	}

	if warningScorer.score(text) >= c.cfg.WarningThreshold {
		return Warning
	}

	best := General
	bestScore := 0
	for _, s := range nonWarningOrder {
		if score := s.score(text); score > bestScore {
			best = s.contentType
			bestScore = score
		}
	}
	return best
}
