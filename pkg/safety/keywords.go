package safety

import "strings"

// Keyword categories scanned against the lowercased user message. CRITICAL
// language about defeating safety mechanisms produces a single trigger; each
// matching HIGH category is reported independently.

var criticalKeywords = []string{
	"bypass",
	"override",
	"disable the safety",
	"disable safety",
	"remove the guard",
	"remove guard",
	"remove safety",
	"defeat the interlock",
	"short circuit",
	"short-circuit",
	"jumper the",
}

var highCategories = []struct {
	name     string
	keywords []string
}{
	{name: "electrical_hazard", keywords: []string{
		"live wire", "exposed wiring", "electrical panel", "breaker box",
		"mains", "high voltage", "electric shock", "electrocut",
	}},
	{name: "gas_fire_hazard", keywords: []string{
		"gas leak", "smell gas", "propane", "natural gas", "open flame",
		"carbon monoxide", "caught fire", "smoke coming",
	}},
	{name: "medical_risk", keywords: []string{
		"injured", "injury", "bleeding", "burned", "burnt myself",
		"swallowed", "poisoned", "unconscious", "electrocuted",
	}},
}

var childWords = []string{"child", "children", "kid", "kids", "baby", "toddler", "infant"}

var childDangerWords = []string{
	"danger", "unsafe", "hazard", "sharp", "hot surface", "shock",
	"burn", "choke", "choking", "poison", "pinch",
}

var warrantyKeywords = []string{
	"void the warranty", "voids the warranty", "void my warranty",
	"voiding the warranty", "warranty void",
}

var sharpToolKeywords = []string{
	"knife", "blade", "saw", "box cutter", "utility knife", "chisel", "grinder",
}

var howToPhrases = []string{"how to", "how do i", "how can i", "show me how"}

// scanKeywords runs every keyword category against the lowercased message.
func scanKeywords(msg string, proximityWindow int) []Trigger {
	var triggers []Trigger

	for _, kw := range criticalKeywords {
		if strings.Contains(msg, kw) {
			triggers = append(triggers, Trigger{
				Type:     "safety_bypass_language",
				Severity: SeverityCritical,
				Reason:   "message asks to defeat a safety mechanism (" + kw + ")",
			})
			break
		}
	}

	for _, cat := range highCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(msg, kw) {
				triggers = append(triggers, Trigger{
					Type:     cat.name,
					Severity: SeverityHigh,
					Reason:   "message mentions " + kw,
				})
				break
			}
		}
	}

	if childProximity(msg, proximityWindow) {
		triggers = append(triggers, Trigger{
			Type:     "child_safety",
			Severity: SeverityHigh,
			Reason:   "child-related and danger-related words appear in close proximity",
		})
	}

	for _, kw := range warrantyKeywords {
		if strings.Contains(msg, kw) {
			triggers = append(triggers, Trigger{
				Type:     "warranty_risk",
				Severity: SeverityMedium,
				Reason:   "message involves voiding the warranty",
			})
			break
		}
	}

	// Sharp tools only matter with procedural intent, not passing mention.
	if containsAny(msg, howToPhrases) {
		for _, kw := range sharpToolKeywords {
			if strings.Contains(msg, kw) {
				triggers = append(triggers, Trigger{
					Type:     "sharp_tool_procedure",
					Severity: SeverityMedium,
					Reason:   "procedural question involving a sharp tool (" + kw + ")",
				})
				break
			}
		}
	}

	return triggers
}

// childProximity requires a child word and a danger word within the window,
// not mere co-occurrence anywhere in the message, to cut false positives on
// unrelated mentions.
func childProximity(msg string, window int) bool {
	for _, cw := range childWords {
		ci := indexWord(msg, cw)
		if ci < 0 {
			continue
		}
		for _, dw := range childDangerWords {
			di := strings.Index(msg, dw)
			if di < 0 {
				continue
			}
			if abs(ci-di) <= window {
				return true
			}
		}
	}
	return false
}

// indexWord finds kw as a whole word, so "kid" does not match "kidding".
func indexWord(msg, kw string) int {
	start := 0
	for {
		i := strings.Index(msg[start:], kw)
		if i < 0 {
			return -1
		}
		i += start
		before := i == 0 || !isWordChar(msg[i-1])
		afterIdx := i + len(kw)
		after := afterIdx >= len(msg) || !isWordChar(msg[afterIdx])
		if before && after {
			return i
		}
		start = i + len(kw)
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func containsAny(msg string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
