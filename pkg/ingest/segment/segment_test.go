package segment

import (
	"strings"
	"testing"
)

func TestSegmentEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\n"} {
		res := Segment(raw)
		if len(res.Blocks) != 0 {
			t.Errorf("Segment(%q) blocks = %d, want 0", raw, len(res.Blocks))
		}
	}
}

func TestHeadingDetection(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLevel int
		wantText  string
	}{
		{
			name:      "marked level 1",
			raw:       "# Installation\n\nSome text.",
			wantLevel: 1,
			wantText:  "Installation",
		},
		{
			name:      "marked level 3",
			raw:       "### Grounding\n\nSome text.",
			wantLevel: 3,
			wantText:  "Grounding",
		},
		{
			name:      "underline equals is level 1",
			raw:       "Installation\n============\n\nSome text.",
			wantLevel: 1,
			wantText:  "Installation",
		},
		{
			name:      "underline dashes is level 2",
			raw:       "Electrical\n----------\n\nSome text.",
			wantLevel: 2,
			wantText:  "Electrical",
		},
		{
			name:      "all caps short line",
			raw:       "SAFETY INSTRUCTIONS\n\nRead carefully.",
			wantLevel: 2,
			wantText:  "SAFETY INSTRUCTIONS",
		},
		{
			name:      "numbered section depth 2",
			raw:       "2.3 Mounting the Bracket\n\nSome text.",
			wantLevel: 2,
			wantText:  "Mounting the Bracket",
		},
		{
			name:      "numbered section depth capped at 3",
			raw:       "1.2.3.4 Deep Section\n\nSome text.",
			wantLevel: 3,
			wantText:  "Deep Section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Segment(tt.raw)
			if len(res.Headings) == 0 {
				t.Fatalf("no headings detected in %q", tt.raw)
			}
			h := res.Headings[0]
			if h.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", h.Level, tt.wantLevel)
			}
			if h.Text != tt.wantText {
				t.Errorf("text = %q, want %q", h.Text, tt.wantText)
			}
		})
	}
}

func TestNumberedLineFollowedByNextOrdinalIsSteps(t *testing.T) {
	raw := "1. Remove cover\n2. Detach wires"
	res := Segment(raw)

	if len(res.Headings) != 0 {
		t.Errorf("headings = %d, want 0 (step sequence, not section)", len(res.Headings))
	}
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if res.Blocks[0].Kind != KindNumberedSteps {
		t.Errorf("kind = %s, want %s", res.Blocks[0].Kind, KindNumberedSteps)
	}
}

func TestWarningBlockRunsToBlankLine(t *testing.T) {
	raw := "WARNING: Disconnect power before servicing.\nFailure to do so may cause shock.\n\nRegular paragraph text here."
	res := Segment(raw)

	if len(res.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(res.Blocks))
	}
	if res.Blocks[0].Kind != KindWarningBlock {
		t.Errorf("first kind = %s, want %s", res.Blocks[0].Kind, KindWarningBlock)
	}
	if !strings.Contains(res.Blocks[0].Content, "Failure to do so") {
		t.Errorf("warning block should include continuation line, got %q", res.Blocks[0].Content)
	}
	if res.Blocks[1].Kind != KindParagraph {
		t.Errorf("second kind = %s, want %s", res.Blocks[1].Kind, KindParagraph)
	}
}

func TestNumberedStepsWithContinuations(t *testing.T) {
	raw := "1. Remove the cover\n   Use a flat screwdriver.\n2. Detach the wires\n- red wire first\n3. Lift the assembly\n\nDone."
	res := Segment(raw)

	if len(res.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2, got %+v", len(res.Blocks), res.Blocks)
	}
	steps := res.Blocks[0]
	if steps.Kind != KindNumberedSteps {
		t.Fatalf("kind = %s, want %s", steps.Kind, KindNumberedSteps)
	}
	for _, want := range []string{"flat screwdriver", "red wire", "Lift the assembly"} {
		if !strings.Contains(steps.Content, want) {
			t.Errorf("steps block missing %q", want)
		}
	}
}

func TestBulletListBlock(t *testing.T) {
	raw := "Included parts:\n\n- bracket\n- screws\n- anchor bolts\n\nKeep them handy."
	res := Segment(raw)

	var list *Block
	for i := range res.Blocks {
		if res.Blocks[i].Kind == KindList {
			list = &res.Blocks[i]
		}
	}
	if list == nil {
		t.Fatal("no list block detected")
	}
	if got := strings.Count(list.Content, "\n") + 1; got != 3 {
		t.Errorf("list lines = %d, want 3", got)
	}
}

func TestFigureCaptionsAreMetadataNotBlocks(t *testing.T) {
	raw := "See the diagram.\n\nFigure 3: Mounting bracket orientation\n\nContinue assembly."
	res := Segment(raw)

	if len(res.FigureCaptions) != 1 {
		t.Fatalf("captions = %d, want 1", len(res.FigureCaptions))
	}
	for _, b := range res.Blocks {
		if strings.Contains(b.Content, "Figure 3") {
			t.Errorf("figure caption leaked into block %q", b.Content)
		}
	}
}

func TestPageBreakDetection(t *testing.T) {
	t.Run("form feed", func(t *testing.T) {
		raw := "page one text\n\f\npage two text"
		res := Segment(raw)
		if len(res.PageBreaks) != 1 {
			t.Fatalf("breaks = %d, want 1", len(res.PageBreaks))
		}
		if res.PageBreaks[0].PageNumber != 2 {
			t.Errorf("page = %d, want 2", res.PageBreaks[0].PageNumber)
		}
	})

	t.Run("page word markers", func(t *testing.T) {
		raw := "intro\n\nPage 2\n\nmore text\n\nPage 3\n\nend"
		res := Segment(raw)
		if len(res.PageBreaks) != 2 {
			t.Fatalf("breaks = %d, want 2", len(res.PageBreaks))
		}
		for _, b := range res.Blocks {
			if strings.HasPrefix(b.Content, "Page ") {
				t.Errorf("page marker leaked into block %q", b.Content)
			}
		}
	})

	t.Run("bare numbers need three increasing occurrences", func(t *testing.T) {
		raw := "text\n\n2\n\ntext\n\n3\n\ntext"
		res := Segment(raw)
		if len(res.PageBreaks) != 0 {
			t.Errorf("breaks = %d, want 0 for only two bare numbers", len(res.PageBreaks))
		}

		raw = "text\n\n2\n\ntext\n\n3\n\ntext\n\n4\n\ntext"
		res = Segment(raw)
		if len(res.PageBreaks) != 3 {
			t.Errorf("breaks = %d, want 3", len(res.PageBreaks))
		}
	})

	t.Run("non increasing bare numbers rejected", func(t *testing.T) {
		raw := "text\n\n5\n\ntext\n\n3\n\ntext\n\n7\n\ntext"
		res := Segment(raw)
		if len(res.PageBreaks) != 0 {
			t.Errorf("breaks = %d, want 0 for non-increasing numbers", len(res.PageBreaks))
		}
	})
}

func TestPageLocator(t *testing.T) {
	locator := NewPageLocator([]PageBreak{
		{PageNumber: 2, Offset: 100},
		{PageNumber: 3, Offset: 200},
	})

	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{200, 3},
		{999, 3},
	}
	for _, tt := range tests {
		if got := locator.PageAt(tt.offset); got != tt.want {
			t.Errorf("PageAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}

	empty := NewPageLocator(nil)
	if got := empty.PageAt(500); got != 1 {
		t.Errorf("PageAt with no breaks = %d, want 1", got)
	}
}

func TestBlockNeverSpansHeading(t *testing.T) {
	raw := "Some intro text\n# Installation\nMounting instructions follow."
	res := Segment(raw)

	for _, b := range res.Blocks {
		if b.Kind == KindHeading {
			continue
		}
		if strings.Contains(b.Content, "# Installation") {
			t.Errorf("content block spans heading line: %q", b.Content)
		}
		if strings.Contains(b.Content, "intro") && strings.Contains(b.Content, "Mounting") {
			t.Errorf("block crosses heading boundary: %q", b.Content)
		}
	}
}

func TestAmbiguousFormattingDegradesToParagraph(t *testing.T) {
	raw := "::: weird ::: markup ||| here\n<<>> more strange stuff"
	res := Segment(raw)

	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if res.Blocks[0].Kind != KindParagraph {
		t.Errorf("kind = %s, want paragraph fallback", res.Blocks[0].Kind)
	}
}
