package guide

import (
	"regexp"
	"strings"
)

// slotCharBudget is the hard truncation applied to the history, culture and
// tourism slots. Truncation is by character count, mid-word; the consuming UI
// renders the raw value, so the budget must not change silently.
const slotCharBudget = 500

// Keyword tables cover the two content languages the engine serves. Matching
// happens on lowercased section titles.
var historyKeywords = []string{
	"history", "história", "historia", "heritage", "património", "patrimônio", "passado",
}

// Generic overview headings that mention the past but are not history
// sections (the travel wiki's "Understand" chapter is the usual offender).
var overviewKeywords = []string{
	"overview", "understand", "entenda", "compreenda", "visão geral", "introdução",
}

var cultureKeywords = []string{
	"culture", "cultura", "tradition", "traditions", "tradição", "tradições", "costumes", "folclore",
}

var tourismKeywords = []string{
	"see", "do", "veja", "faça", "tourism", "turismo", "attraction", "attractions",
	"atrações", "atracções", "sights", "pontos turísticos", "o que fazer",
}

// containsAny reports whether text contains one of the keywords. Phrases use
// substring match; short tokens ("do", "see") require whole-word boundaries so
// "Londres" does not match "do".
func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if strings.Contains(k, " ") {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}

		if len(k) <= 4 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			if re.MatchString(text) {
				return true
			}
			continue
		}

		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Classified holds the four semantic text slots extracted from a section list.
type Classified struct {
	Summary string
	History string
	Culture string
	Tourism string
}

// Classify maps ordered sections onto the four slots. Assignment is exclusive
// and first-match-wins in document order: a slot is never overwritten, and a
// section consumed by one slot is not offered to the others.
func Classify(sections []Section) Classified {
	var c Classified

	for _, section := range sections {
		title := strings.ToLower(strings.TrimSpace(section.Title))

		switch {
		case c.Summary == "" && title == strings.ToLower(LeadSectionTitle):
			c.Summary = section.Content

		case c.History == "" && containsAny(title, historyKeywords) && !containsAny(title, overviewKeywords):
			c.History = truncate(section.Content, slotCharBudget)

		case c.Culture == "" && containsAny(title, cultureKeywords) && !containsAny(title, tourismKeywords):
			c.Culture = truncate(section.Content, slotCharBudget)

		case c.Tourism == "" && containsAny(title, tourismKeywords) && !containsAny(title, historyKeywords):
			c.Tourism = truncate(section.Content, slotCharBudget)
		}
	}

	return c
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
