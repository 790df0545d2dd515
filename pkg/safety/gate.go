package safety

import (
	"fmt"
	"strings"
)

// Severity ranks a trigger. The ordering is a strict lattice: the reduced
// action is decided solely by the worst severity present.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Action is the single verdict the surrounding system must obey.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionWarn     Action = "warn"
	ActionEscalate Action = "escalate"
	ActionBlock    Action = "block"
)

// Trigger is one detected risk or confidence signal.
type Trigger struct {
	Type     string
	Severity Severity
	Reason   string
}

// Verdict is the gate output: always well formed, never an error.
// "Unable to decide" is not representable by design.
type Verdict struct {
	Triggered bool
	Triggers  []Trigger
	Action    Action
}

// RetrievedChunk is the gate's view of one retrieval result.
type RetrievedChunk struct {
	DocumentID  string
	SectionPath string
	ContentType string
	Score       float64
}

// Answer is the gate's view of the generated structured answer.
type Answer struct {
	Confidence float64
}

// Config carries the gating floors and windows.
type Config struct {
	LowScoreFloor        float64 // every retrieval score below this: insufficient evidence
	MidScoreFloor        float64 // top score below this on a specific query: low confidence
	LongQueryWords       int     // word count above which a query counts as specific
	AnswerHardFloor      float64 // answer confidence below this is HIGH
	AnswerSoftFloor      float64 // answer confidence below this (but above hard) is MEDIUM
	ChildProximityWindow int     // max char distance for the child-safety check
}

func DefaultConfig() Config {
	return Config{
		LowScoreFloor:        0.15,
		MidScoreFloor:        0.5,
		LongQueryWords:       4,
		AnswerHardFloor:      0.3,
		AnswerSoftFloor:      0.6,
		ChildProximityWindow: 120,
	}
}

// Gate inspects the user query, the retrieved set and the generated answer
// and reduces all triggers to exactly one action. It is a pure function of
// its inputs: no persistence, no state.
type Gate struct {
	cfg Config
}

func NewGate(cfg Config) *Gate {
	if cfg.ChildProximityWindow <= 0 {
		cfg = DefaultConfig()
	}
	return &Gate{cfg: cfg}
}

// Evaluate scans all trigger sources and reduces the result through the
// severity lattice: CRITICAL blocks, HIGH escalates, MEDIUM warns,
// otherwise the answer is allowed.
func (g *Gate) Evaluate(userMessage string, retrieved []RetrievedChunk, answer Answer) Verdict {
	var triggers []Trigger

	triggers = append(triggers, scanKeywords(strings.ToLower(userMessage), g.cfg.ChildProximityWindow)...)
	triggers = append(triggers, g.retrievalTriggers(userMessage, retrieved)...)
	triggers = append(triggers, g.responseTriggers(answer)...)
	triggers = append(triggers, conflictTriggers(retrieved)...)

	return Verdict{
		Triggered: len(triggers) > 0,
		Triggers:  triggers,
		Action:    reduce(triggers),
	}
}

// retrievalTriggers fires on weak or absent retrieval evidence. Short
// queries are exempt from the mid-floor check: a vague one-word question is
// expected to score low without indicating a hard problem.
func (g *Gate) retrievalTriggers(userMessage string, retrieved []RetrievedChunk) []Trigger {
	if len(retrieved) == 0 {
		return []Trigger{{
			Type:     "no_retrieval_results",
			Severity: SeverityHigh,
			Reason:   "no document chunks were retrieved for this question",
		}}
	}

	top := retrieved[0].Score
	allLow := true
	for _, c := range retrieved {
		if c.Score > top {
			top = c.Score
		}
		if c.Score >= g.cfg.LowScoreFloor {
			allLow = false
		}
	}

	if allLow {
		return []Trigger{{
			Type:     "insufficient_evidence",
			Severity: SeverityHigh,
			Reason:   fmt.Sprintf("all retrieval scores below %.2f", g.cfg.LowScoreFloor),
		}}
	}

	if top < g.cfg.MidScoreFloor && len(strings.Fields(userMessage)) > g.cfg.LongQueryWords {
		return []Trigger{{
			Type:     "low_retrieval_confidence",
			Severity: SeverityMedium,
			Reason:   fmt.Sprintf("top retrieval score %.2f below %.2f for a specific question", top, g.cfg.MidScoreFloor),
		}}
	}
	return nil
}

// responseTriggers fires on low generated-answer confidence. The two floors
// are mutually exclusive: only the harder one fires when both apply.
func (g *Gate) responseTriggers(answer Answer) []Trigger {
	switch {
	case answer.Confidence < g.cfg.AnswerHardFloor:
		return []Trigger{{
			Type:     "answer_confidence_critical",
			Severity: SeverityHigh,
			Reason:   fmt.Sprintf("answer confidence %.2f below hard floor %.2f", answer.Confidence, g.cfg.AnswerHardFloor),
		}}
	case answer.Confidence < g.cfg.AnswerSoftFloor:
		return []Trigger{{
			Type:     "answer_confidence_low",
			Severity: SeverityMedium,
			Reason:   fmt.Sprintf("answer confidence %.2f below soft floor %.2f", answer.Confidence, g.cfg.AnswerSoftFloor),
		}}
	}
	return nil
}

// conflictTriggers is a heuristic proxy for contradictory guidance, not true
// semantic contradiction detection: it fires when two or more distinct
// documents contribute to the same section path with differing content-type
// classifications.
func conflictTriggers(retrieved []RetrievedChunk) []Trigger {
	type group struct {
		docs  map[string]bool
		types map[string]bool
	}
	sections := make(map[string]*group)
	order := []string{}
	for _, c := range retrieved {
		if c.SectionPath == "" {
			continue
		}
		gr, ok := sections[c.SectionPath]
		if !ok {
			gr = &group{docs: map[string]bool{}, types: map[string]bool{}}
			sections[c.SectionPath] = gr
			order = append(order, c.SectionPath)
		}
		gr.docs[c.DocumentID] = true
		gr.types[c.ContentType] = true
	}

	var triggers []Trigger
	for _, path := range order {
		gr := sections[path]
		if len(gr.docs) >= 2 && len(gr.types) >= 2 {
			triggers = append(triggers, Trigger{
				Type:     "conflicting_sources",
				Severity: SeverityHigh,
				Reason:   fmt.Sprintf("multiple documents disagree on section %q", path),
			})
		}
	}
	return triggers
}

// reduce collapses the trigger set to exactly one action: any CRITICAL
// blocks regardless of what else fired, else any HIGH escalates, else any
// MEDIUM warns.
func reduce(triggers []Trigger) Action {
	if len(triggers) == 0 {
		return ActionAllow
	}
	worst := SeverityLow
	for _, t := range triggers {
		if t.Severity > worst {
			worst = t.Severity
		}
	}
	switch worst {
	case SeverityCritical:
		return ActionBlock
	case SeverityHigh:
		return ActionEscalate
	case SeverityMedium:
		return ActionWarn
	default:
		return ActionAllow
	}
}
