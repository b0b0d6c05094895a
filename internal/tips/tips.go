// Package tips extracts short, categorized travel tips from an article's
// rendered markup. It is a second pass over the same article as the section
// parser, against a different representation: tip mining needs sibling
// block-element traversal, which plain text cannot offer.
package tips

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tripwise/cityguide/internal/sources"
)

// maxTipsPerCategory bounds verbosity: practical sections run long, and two
// prose tips per concern is what the guide view renders.
const maxTipsPerCategory = 2

// HTMLFetcher supplies the rendered article document for one place.
type HTMLFetcher interface {
	FetchRenderedHTML(ctx context.Context, src sources.Source, place string) (*goquery.Document, error)
}

// category maps one travel concern to its icon, display label and the
// candidate heading identifiers tried in order. Heading ids cover the
// English and Portuguese travel-wiki vocabularies.
type category struct {
	id       string
	icon     string
	label    string
	headings []string
}

var categories = []category{
	{"arrival", "🚆", "Getting there", []string{"Get_in", "Get_around", "Chegar", "Chegue", "Circule", "Como_chegar"}},
	{"lodging", "🏨", "Sleep", []string{"Sleep", "Durma", "Onde_dormir", "Hospedagem"}},
	{"food", "🍽️", "Eat", []string{"Eat", "Coma", "Onde_comer", "Alimentação"}},
	{"nightlife", "🍸", "Drink", []string{"Drink", "Beba", "Beba_e_saia", "Vida_noturna"}},
	{"shopping", "🛍️", "Buy", []string{"Buy", "Compre", "Compras"}},
	{"connectivity", "📶", "Connect", []string{"Connect", "Conecte-se", "Comunicações"}},
	{"safety", "⚠️", "Stay safe", []string{"Stay_safe", "Mantenha-se_seguro", "Segurança"}},
	{"budget", "💰", "Costs", []string{"Costs", "Custos", "Budget", "Orçamento"}},
	{"climate", "🌤️", "Climate", []string{"Climate", "Clima", "Weather", "Tempo"}},
	{"etiquette", "🤝", "Respect", []string{"Respect", "Respeite", "Etiqueta"}},
	{"cope", "ℹ️", "Good to know", []string{"Cope", "Cotidiano", "Stay_healthy", "Mantenha-se_saudável"}},
}

type Extractor struct {
	fetcher HTMLFetcher
}

func NewExtractor(fetcher HTMLFetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// ExtractTips fetches the rendered article and mines each category's section
// for up to two qualifying tips, formatted as "{icon} {label}: {text}".
func (e *Extractor) ExtractTips(ctx context.Context, src sources.Source, place string) ([]string, error) {
	doc, err := e.fetcher.FetchRenderedHTML(ctx, src, place)
	if err != nil {
		return nil, fmt.Errorf("fetching rendered article: %w", err)
	}
	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument runs the category table over an already-parsed
// document. Split out so the walking logic is testable against synthetic
// fixtures.
func ExtractFromDocument(doc *goquery.Document) []string {
	var tips []string
	for _, cat := range categories {
		heading := findHeading(doc, cat.headings)
		if heading == nil {
			continue
		}
		for _, text := range collectSectionBlocks(heading, maxTipsPerCategory) {
			tips = append(tips, fmt.Sprintf("%s %s: %s", cat.icon, cat.label, text))
		}
	}
	return tips
}

// findHeading tries each candidate identifier in order, first as an element
// id and then as heading text, returning the heading element or nil.
func findHeading(doc *goquery.Document, candidates []string) *goquery.Selection {
	for _, name := range candidates {
		if sel := doc.Find("#" + name).First(); sel.Length() > 0 {
			if isHeadingTag(sel) {
				return sel
			}
			if h := sel.Closest("h1, h2, h3, h4, h5"); h.Length() > 0 {
				return h
			}
		}

		wanted := strings.ReplaceAll(name, "_", " ")
		var found *goquery.Selection
		doc.Find("h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(s.Text()), wanted) {
				found = s
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// collectSectionBlocks walks forward through the heading's sibling block
// elements, accumulating up to max qualifying tip texts and stopping at the
// next heading of equal or higher rank, which ends the section.
func collectSectionBlocks(heading *goquery.Selection, max int) []string {
	rank := headingRank(heading)
	start := heading
	// Some parser outputs wrap each heading in a container div; walk the
	// wrapper's siblings in that case.
	if parent := heading.Parent(); parent.HasClass("mw-heading") {
		start = parent
	}

	var collected []string
	for node := start.Next(); node.Length() > 0 && len(collected) < max; node = node.Next() {
		if r := nodeRank(node); r > 0 && r <= rank {
			break
		}

		switch {
		case node.Is("p"):
			if text := CleanText(node.Text()); QualifiesAsTip(text) {
				collected = append(collected, text)
			}
		case node.Is("ul, ol"):
			node.ChildrenFiltered("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
				if len(collected) >= max {
					return false
				}
				if text := CleanText(li.Text()); QualifiesAsTip(text) {
					collected = append(collected, text)
				}
				return true
			})
		}
	}
	return collected
}

func isHeadingTag(s *goquery.Selection) bool {
	return s.Is("h1, h2, h3, h4, h5, h6")
}

// headingRank returns the numeric level of a heading element (h2 → 2).
func headingRank(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// nodeRank resolves the heading rank of a sibling node, looking through
// heading wrapper divs.
func nodeRank(s *goquery.Selection) int {
	if r := headingRank(s); r > 0 {
		return r
	}
	if s.HasClass("mw-heading") {
		if h := s.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
			return headingRank(h)
		}
	}
	return 0
}
