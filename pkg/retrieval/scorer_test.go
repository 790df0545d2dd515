package retrieval

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func candidate(content, contentType string) Candidate {
	return Candidate{
		ChunkID:     uuid.New(),
		Content:     content,
		DocumentID:  uuid.New(),
		ContentType: contentType,
	}
}

func TestScoreEmptyQuery(t *testing.T) {
	s := NewScorer(DefaultConfig())
	candidates := []Candidate{
		candidate("The unit ships with a mounting bracket.", "GENERAL"),
	}

	for _, query := range []string{"", "the a of", "? !"} {
		ranked := s.Score(query, candidates)
		if ranked.NonZero != 0 {
			t.Errorf("query %q: NonZero = %d, want 0", query, ranked.NonZero)
		}
		for _, r := range ranked.Results {
			if r.Score != 0 {
				t.Errorf("query %q: score = %f, want 0", query, r.Score)
			}
		}
	}
}

func TestWarningAffinityOutranksGeneral(t *testing.T) {
	s := NewScorer(DefaultConfig())
	candidates := []Candidate{
		candidate("The shock absorber spring is listed in the replacement parts table.", "GENERAL"),
		candidate("Risk of electric shock. Always disconnect the power supply first.", "WARNING"),
	}

	ranked := s.Score("electrical shock hazard", candidates)
	if len(ranked.Results) == 0 {
		t.Fatal("no results")
	}
	top := ranked.Results[0]
	if top.ContentType != "WARNING" {
		t.Errorf("top content type = %s, want WARNING via safety-cue affinity", top.ContentType)
	}
	if top.Score <= top.KeywordScore {
		t.Errorf("score %f should exceed keyword score %f with bonuses applied", top.Score, top.KeywordScore)
	}
}

func TestScoreMonotonicInTermCount(t *testing.T) {
	s := NewScorer(DefaultConfig())
	filler := strings.Repeat("bracket mounting assembly wall anchor screw panel frame ", 6)
	once := candidate(filler+"thermostat end", "GENERAL")
	twice := candidate(filler+"thermostat thermostat", "GENERAL")

	rOnce := s.Score("thermostat", []Candidate{once}).Results[0]
	rTwice := s.Score("thermostat", []Candidate{twice}).Results[0]
	if rTwice.Score <= rOnce.Score {
		t.Errorf("score with 2 occurrences (%f) not above 1 occurrence (%f)", rTwice.Score, rOnce.Score)
	}
}

func TestPhraseBonus(t *testing.T) {
	s := NewScorer(DefaultConfig())
	candidates := []Candidate{
		candidate("To replace the water filter, open the lower panel behind the kick plate.", "GENERAL"),
		candidate("The filter is sold separately. To replace other parts, contact support about the water supply.", "GENERAL"),
	}

	ranked := s.Score("replace the water filter", candidates)
	if !strings.Contains(ranked.Results[0].Content, "kick plate") {
		t.Error("exact phrase match should outrank scattered term matches")
	}
}

func TestTopKPaddingAndNonZero(t *testing.T) {
	s := NewScorer(Config{TopK: 5, CoverageWeight: 0.5, PhraseBonus: 1.5, HeadingBonus: 0.2})

	candidates := []Candidate{
		candidate("Compressor noise is normal during startup.", "GENERAL"),
		candidate("The compressor restarts after a three minute delay.", "GENERAL"),
		candidate("Keep the door seal clean with a damp cloth.", "GENERAL"),
		candidate("Level the unit using the front feet.", "GENERAL"),
		candidate("The shelves are dishwasher safe.", "GENERAL"),
		candidate("Register your product online for updates.", "GENERAL"),
	}

	ranked := s.Score("compressor", candidates)
	if len(ranked.Results) != 5 {
		t.Fatalf("results = %d, want exactly TopK", len(ranked.Results))
	}
	if ranked.NonZero != 2 {
		t.Errorf("NonZero = %d, want 2", ranked.NonZero)
	}
	for _, r := range ranked.Results[:2] {
		if !strings.Contains(strings.ToLower(r.Content), "compressor") {
			t.Errorf("matching chunk not ranked first: %q", r.Content)
		}
	}
	for _, r := range ranked.Results[2:] {
		if r.Score != 0 {
			t.Errorf("padding entry has score %f, want 0", r.Score)
		}
	}
}

func TestFewerCandidatesThanTopK(t *testing.T) {
	s := NewScorer(DefaultConfig())
	ranked := s.Score("compressor", []Candidate{
		candidate("Compressor noise is normal.", "GENERAL"),
	})
	if len(ranked.Results) != 1 {
		t.Errorf("results = %d, want 1", len(ranked.Results))
	}
	if ranked.NonZero != 1 {
		t.Errorf("NonZero = %d, want 1", ranked.NonZero)
	}
}

func TestHeadingBonusFavorsFirstLine(t *testing.T) {
	s := NewScorer(DefaultConfig())
	inHeading := candidate("Defrosting the freezer\nEmpty the compartment and leave the door open.", "GENERAL")
	inBody := candidate("Routine care\nWipe the compartment weekly. Defrosting happens automatically in most cases anyway.", "GENERAL")

	ranked := s.Score("defrosting", []Candidate{inBody, inHeading})
	if !strings.HasPrefix(ranked.Results[0].Content, "Defrosting the freezer") {
		t.Error("first-line match should outrank a body-only match")
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("How do I reset the THERMOSTAT, please?")
	want := []string{"reset", "thermostat", "please"}
	if len(got) != len(want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
