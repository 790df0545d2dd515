package answer

import "testing"

func TestParseResult(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantAnswer     string
		wantConfidence float64
	}{
		{
			name:           "clean json",
			raw:            `{"answer": "Tighten the valve clockwise [1].", "confidence": 0.85}`,
			wantAnswer:     "Tighten the valve clockwise [1].",
			wantConfidence: 0.85,
		},
		{
			name:           "fenced json",
			raw:            "```json\n{\"answer\": \"See page 4 [2].\", \"confidence\": 0.7}\n```",
			wantAnswer:     "See page 4 [2].",
			wantConfidence: 0.7,
		},
		{
			name:           "plain text falls back to neutral confidence",
			raw:            "The filter sits behind the lower panel.",
			wantAnswer:     "The filter sits behind the lower panel.",
			wantConfidence: fallbackConfidence,
		},
		{
			name:           "confidence clamped to one",
			raw:            `{"answer": "Yes.", "confidence": 3.2}`,
			wantAnswer:     "Yes.",
			wantConfidence: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseResult(tt.raw)
			if got.Answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %f, want %f", got.Confidence, tt.wantConfidence)
			}
		})
	}
}
