package guide

import (
	"context"
	"strconv"
	"strings"

	"github.com/tripwise/cityguide/internal/cache"
	"github.com/tripwise/cityguide/internal/mediawiki"
	"github.com/tripwise/cityguide/internal/metrics"
	"github.com/tripwise/cityguide/internal/sources"
)

// Encyclopedia search results mix places with films, bands, people and
// service pages; the travel-wiki corpus is already place-scoped and needs no
// filtering. These terms are checked against lowercased title + description.
var searchBlacklist = []string{
	"disambiguation", "desambiguação", "may refer to",
	"(film)", "(filme)", "(band)", "(banda)", "(album)", "(álbum)",
	"(song)", "(canção)", "(series)", "(série)", "(magazine)", "(revista)",
	"footballer", "futebolista", "singer", "cantor", "cantora",
	"politician", "político", "actor", "atriz", "company", "empresa",
	"list of", "lista de",
}

// Pseudo-namespace pages never belong in a place typeahead.
var searchNamespacePrefixes = []string{
	"category:", "categoria:", "template:", "predefinição:", "wikipedia:",
	"portal:", "file:", "ficheiro:", "help:", "ajuda:",
}

// SearchCities runs typeahead search over the source chain: the travel wikis
// are tried first and their results pass through untouched; only when the
// general encyclopedia answers is the topical blacklist applied.
func (s *Service) SearchCities(ctx context.Context, query, language string, limit int) ([]mediawiki.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	key := cache.Key("search", query, language, strconv.Itoa(limit))
	if v, ok := s.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.([]mediawiki.SearchResult), nil
	}
	metrics.Global.IncrementCacheMisses()
	metrics.Global.IncrementSearchQueries()

	var results []mediawiki.SearchResult
	for _, src := range s.chain(language, s.fallback) {
		found, err := s.searcher.SearchPages(ctx, src, query, limit)
		if err != nil || len(found) == 0 {
			continue
		}
		if src.Kind == sources.KindEncyclopedia {
			found = filterEncyclopediaResults(found)
		}
		if len(found) > 0 {
			results = found
			break
		}
	}

	if results == nil {
		results = []mediawiki.SearchResult{}
	}
	s.cache.Set(key, results)
	return results, nil
}

func filterEncyclopediaResults(results []mediawiki.SearchResult) []mediawiki.SearchResult {
	filtered := make([]mediawiki.SearchResult, 0, len(results))
	for _, r := range results {
		if isTopicalNoise(r) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func isTopicalNoise(r mediawiki.SearchResult) bool {
	title := strings.ToLower(r.Title)
	for _, prefix := range searchNamespacePrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}

	haystack := title + " " + strings.ToLower(r.Description)
	for _, term := range searchBlacklist {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
