package guide

import (
	"regexp"
	"strings"
)

// headingPattern matches wiki-style plain-text headings: a title wrapped in
// repeated "=" delimiters on its own line. The repetition count is ignored;
// every heading below the title is treated as level 2.
var headingPattern = regexp.MustCompile(`(?m)^\s*=+\s*([^=\n]+?)\s*=+\s*$`)

// ParseSections splits a plain-text article body into ordered sections.
// Splitting on the heading pattern yields the lead text followed by
// alternating title/body pairs; the lead becomes the level-1 "Introduction"
// section when non-empty. Heading vocabulary is left untouched here, language
// awareness belongs to classification.
func ParseSections(text string) []Section {
	bodies := headingPattern.Split(text, -1)
	titles := headingPattern.FindAllStringSubmatch(text, -1)

	var sections []Section

	if lead := strings.TrimSpace(bodies[0]); lead != "" {
		sections = append(sections, Section{
			Title:   LeadSectionTitle,
			Content: lead,
			Level:   1,
		})
	}

	for i, match := range titles {
		if i+1 >= len(bodies) {
			break
		}
		sections = append(sections, Section{
			Title:   strings.TrimSpace(match[1]),
			Content: strings.TrimSpace(bodies[i+1]),
			Level:   2,
		})
	}

	return sections
}
