package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"product-support-be/pkg/llm"
)

// Source is one retrieved chunk handed to the model, numbered so the prompt
// can demand bracketed citations.
type Source struct {
	Index         int
	DocumentTitle string
	SectionPath   string
	PageStart     int
	PageEnd       int
	Content       string
}

// Result is the structured model output. Confidence is the model's own
// self-assessment in [0,1]; the safety gate treats it as one signal among
// several, never as ground truth.
type Result struct {
	Answer     string
	Confidence float64
}

const fallbackConfidence = 0.5

// Generator produces grounded answers over a fixed set of sources.
type Generator struct {
	provider llm.LLMProvider
}

func NewGenerator(provider llm.LLMProvider) *Generator {
	return &Generator{provider: provider}
}

const systemPrompt = `You are a product support assistant. Answer ONLY from the numbered sources below.
Rules:
- If the sources do not contain the answer, say you don't know. Never invent product facts.
- Reference sources with bracketed numbers, e.g. [1].
- Reply with a single JSON object: {"answer": "...", "confidence": 0.0-1.0}
  where confidence reflects how completely the sources cover the question.`

// Generate asks the model for a JSON answer over the sources. A reply that
// cannot be parsed as JSON is used verbatim with a neutral confidence
// instead of failing the whole chat turn.
func (g *Generator) Generate(ctx context.Context, question string, sources []Source, history []llm.Message) (*Result, error) {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\nSources:\n")
	for _, s := range sources {
		fmt.Fprintf(&sb, "[%d] %s", s.Index, s.DocumentTitle)
		if s.SectionPath != "" {
			fmt.Fprintf(&sb, " > %s", s.SectionPath)
		}
		fmt.Fprintf(&sb, " (p.%d-%d)\n%s\n\n", s.PageStart, s.PageEnd, s.Content)
	}

	messages := []llm.Message{{Role: "system", Content: sb.String()}}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: question})

	raw, err := g.provider.Chat(ctx, messages, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return parseResult(raw), nil
}

func parseResult(raw string) *Result {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var parsed struct {
		Answer     string  `json:"answer"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil && parsed.Answer != "" {
		conf := parsed.Confidence
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		return &Result{Answer: parsed.Answer, Confidence: conf}
	}

	// Models occasionally ignore the JSON instruction. Keep the text, flag
	// the uncertainty through a neutral confidence.
	return &Result{Answer: cleaned, Confidence: fallbackConfidence}
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
