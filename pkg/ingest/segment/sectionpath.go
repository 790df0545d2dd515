package segment

import "strings"

// SectionPathBuilder maintains a stack-based heading breadcrumb. Pushing a
// heading pops every stack entry at an equal or deeper level, so the path is
// always well formed, e.g. "Installation/Electrical/Grounding".
type SectionPathBuilder struct {
	stack []Heading
}

func NewSectionPathBuilder() *SectionPathBuilder {
	return &SectionPathBuilder{}
}

// Push records a heading, replacing any sibling or deeper entries.
func (b *SectionPathBuilder) Push(h Heading) {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].Level >= h.Level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	b.stack = append(b.stack, h)
}

// Path returns the current breadcrumb joined with "/". Empty when no heading
// has been seen yet.
func (b *SectionPathBuilder) Path() string {
	if len(b.stack) == 0 {
		return ""
	}
	parts := make([]string, len(b.stack))
	for i, h := range b.stack {
		parts[i] = h.Text
	}
	return strings.Join(parts, "/")
}
