// Package sources describes the content sources the engine may query and the
// order in which they are tried. Adding or reordering a source is a data
// change here, not a code change in the resolver.
package sources

import "fmt"

type Kind string

const (
	// KindTravel is a travel-purpose-built wiki whose articles carry
	// practical sections (get in, sleep, eat, stay safe).
	KindTravel Kind = "travel"
	// KindEncyclopedia is a broad-coverage wiki used as a last resort.
	KindEncyclopedia Kind = "encyclopedia"
)

// Source identifies one queryable wiki: its domain, content language and
// corpus kind. The MediaWiki API shape is the same across all of them.
type Source struct {
	Name   string
	Domain string
	Lang   string
	Kind   Kind
}

func Travel(lang string) Source {
	return Source{
		Name:   fmt.Sprintf("wikivoyage-%s", lang),
		Domain: fmt.Sprintf("%s.wikivoyage.org", lang),
		Lang:   lang,
		Kind:   KindTravel,
	}
}

func Encyclopedia(lang string) Source {
	return Source{
		Name:   fmt.Sprintf("wikipedia-%s", lang),
		Domain: fmt.Sprintf("%s.wikipedia.org", lang),
		Lang:   lang,
		Kind:   KindEncyclopedia,
	}
}

// Chain returns the fixed probe order for one guide request: travel wiki in
// the preferred language, travel wiki in the fallback language, then the
// encyclopedia in the preferred language.
func Chain(preferred, fallback string) []Source {
	if preferred == "" {
		preferred = fallback
	}
	chain := []Source{Travel(preferred)}
	if fallback != "" && fallback != preferred {
		chain = append(chain, Travel(fallback))
	}
	chain = append(chain, Encyclopedia(preferred))
	return chain
}
