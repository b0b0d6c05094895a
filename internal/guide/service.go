// Package guide assembles destination guides: it resolves an article across
// the source chain, segments and classifies its text, and composes tips and
// images into a single cached CityGuide record.
package guide

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tripwise/cityguide/internal/cache"
	"github.com/tripwise/cityguide/internal/images"
	"github.com/tripwise/cityguide/internal/logger"
	"github.com/tripwise/cityguide/internal/mediawiki"
	"github.com/tripwise/cityguide/internal/metrics"
	"github.com/tripwise/cityguide/internal/sources"
)

// SummaryFetcher fetches the summary record for one place from one source.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context, src sources.Source, place string) (*mediawiki.Article, error)
}

// ExtractFetcher fetches the full plain-text article body from one source.
type ExtractFetcher interface {
	FetchExtract(ctx context.Context, src sources.Source, place string) (string, error)
}

// PageSearcher runs a typeahead page search on one source.
type PageSearcher interface {
	SearchPages(ctx context.Context, src sources.Source, query string, limit int) ([]mediawiki.SearchResult, error)
}

// TipExtractor produces categorized, noise-filtered tip strings for a place.
type TipExtractor interface {
	ExtractTips(ctx context.Context, src sources.Source, place string) ([]string, error)
}

// ImageResolver returns a bounded, deduplicated image set for a place.
type ImageResolver interface {
	ResolveImages(ctx context.Context, place, lang string, limit int) ([]images.Image, error)
}

// Cache is the injected store consulted before any network work.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// Resolver probes the source chain in order and returns the first usable
// article together with the source that served it. Callers must direct every
// sub-fetch at that resolved source: a fallback may have changed the language.
type Resolver struct {
	Fetcher SummaryFetcher
	Log     *slog.Logger
}

// Resolve returns (nil, zero source, nil) when every source is exhausted.
// Per-source failures are not errors, they mean "try the next one".
func (r *Resolver) Resolve(ctx context.Context, chain []sources.Source, place string) (*mediawiki.Article, sources.Source, error) {
	for i, src := range chain {
		article, err := r.Fetcher.FetchSummary(ctx, src, place)
		if err != nil {
			r.Log.Debug("source miss", "source", src.Name, "place", place, "error", err)
			if i < len(chain)-1 {
				metrics.Global.IncrementSourceFallbacks()
			}
			continue
		}
		return article, src, nil
	}
	return nil, sources.Source{}, nil
}

// Deps wires a Service's collaborators so tests can supply deterministic
// fakes and assert call counts without network access.
type Deps struct {
	Fetcher          SummaryFetcher
	Extracts         ExtractFetcher
	Searcher         PageSearcher
	Tips             TipExtractor
	Images           ImageResolver
	Cache            Cache
	FallbackLanguage string
	ImageLimit       int

	// Chain overrides the source probe order; nil means sources.Chain.
	Chain func(preferred, fallback string) []sources.Source
}

type Service struct {
	resolver   *Resolver
	extracts   ExtractFetcher
	searcher   PageSearcher
	tips       TipExtractor
	images     ImageResolver
	cache      Cache
	fallback   string
	imageLimit int
	chain      func(preferred, fallback string) []sources.Source
	log        *slog.Logger
}

func NewService(d Deps) *Service {
	log := logger.With("component", "guide")
	chain := d.Chain
	if chain == nil {
		chain = sources.Chain
	}
	return &Service{
		resolver:   &Resolver{Fetcher: d.Fetcher, Log: log},
		extracts:   d.Extracts,
		searcher:   d.Searcher,
		tips:       d.Tips,
		images:     d.Images,
		cache:      d.Cache,
		fallback:   d.FallbackLanguage,
		imageLimit: d.ImageLimit,
		chain:      chain,
		log:        log,
	}
}

// GetCityGuide is the primary entry point. A nil guide with a nil error means
// no source had usable content for the place; faults never escape to the
// caller.
func (s *Service) GetCityGuide(ctx context.Context, cityName, language string) (*CityGuide, error) {
	key := cache.Key("guide", cityName, language)
	if v, ok := s.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.(*CityGuide), nil
	}
	metrics.Global.IncrementCacheMisses()

	start := time.Now()
	chain := s.chain(language, s.fallback)

	article, src, err := s.resolver.Resolve(ctx, chain, cityName)
	if err != nil || article == nil {
		return nil, nil
	}

	// The three enrichment passes are independent of each other; each one
	// degrades to an empty value on failure without touching its siblings.
	var (
		wg          sync.WaitGroup
		sectionList []Section
		classified  Classified
		tipList     []string
		imageList   []images.Image
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		extract, err := s.extracts.FetchExtract(ctx, src, article.Title)
		if err != nil {
			s.log.Warn("section fetch failed", "place", article.Title, "source", src.Name, "error", err)
			return
		}
		sectionList = ParseSections(extract)
		classified = Classify(sectionList)
	}()

	go func() {
		defer wg.Done()
		tips, err := s.tips.ExtractTips(ctx, src, article.Title)
		if err != nil {
			s.log.Warn("tip extraction failed", "place", article.Title, "source", src.Name, "error", err)
			return
		}
		tipList = tips
	}()

	go func() {
		defer wg.Done()
		imgs, err := s.images.ResolveImages(ctx, article.Title, src.Lang, s.imageLimit)
		if err != nil {
			s.log.Warn("image resolution failed", "place", article.Title, "error", err)
			return
		}
		imageList = imgs
	}()

	wg.Wait()

	if classified.Summary == "" {
		classified.Summary = article.Extract
	}
	if tipList == nil {
		tipList = []string{}
	}
	if imageList == nil {
		imageList = []images.Image{}
	}

	g := &CityGuide{
		CityName: article.Title,
		Summary:  classified.Summary,
		History:  classified.History,
		Culture:  classified.Culture,
		Tourism:  classified.Tourism,
		Tips:     tipList,
		Images:   imageList,
		Article:  article,
		Sections: sectionList,
	}

	s.cache.Set(key, g)
	metrics.Global.IncrementGuidesBuilt()
	metrics.Global.AddTipsExtracted(len(tipList))
	metrics.Global.RecordBuildTime(time.Since(start))
	metrics.Global.SetLastRun()

	s.log.Info("guide assembled", "place", g.CityName, "source", src.Name,
		"sections", len(sectionList), "tips", len(tipList), "images", len(imageList))

	return g, nil
}

// GetArticle resolves just the summary record across the source chain.
func (s *Service) GetArticle(ctx context.Context, place, language string) (*mediawiki.Article, error) {
	key := cache.Key("article", place, language)
	if v, ok := s.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.(*mediawiki.Article), nil
	}
	metrics.Global.IncrementCacheMisses()

	article, _, err := s.resolver.Resolve(ctx, s.chain(language, s.fallback), place)
	if err != nil || article == nil {
		return nil, nil
	}
	s.cache.Set(key, article)
	return article, nil
}

// GetArticleSections resolves the place and returns its parsed section list.
func (s *Service) GetArticleSections(ctx context.Context, place, language string) ([]Section, error) {
	key := cache.Key("sections", place, language)
	if v, ok := s.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.([]Section), nil
	}
	metrics.Global.IncrementCacheMisses()

	article, src, err := s.resolver.Resolve(ctx, s.chain(language, s.fallback), place)
	if err != nil || article == nil {
		return nil, nil
	}
	extract, err := s.extracts.FetchExtract(ctx, src, article.Title)
	if err != nil {
		s.log.Warn("section fetch failed", "place", place, "error", err)
		return nil, nil
	}
	sectionList := ParseSections(extract)
	s.cache.Set(key, sectionList)
	return sectionList, nil
}

// GetArticleImages returns at most limit images for the place.
func (s *Service) GetArticleImages(ctx context.Context, place, language string, limit int) ([]images.Image, error) {
	if limit <= 0 {
		limit = s.imageLimit
	}
	key := cache.Key("images", place, language, strconv.Itoa(limit))
	if v, ok := s.cache.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return v.([]images.Image), nil
	}
	metrics.Global.IncrementCacheMisses()

	imgs, err := s.images.ResolveImages(ctx, place, language, limit)
	if err != nil {
		s.log.Warn("image resolution failed", "place", place, "error", err)
		return []images.Image{}, nil
	}
	s.cache.Set(key, imgs)
	return imgs, nil
}
