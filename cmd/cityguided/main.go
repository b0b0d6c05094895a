package main

import (
	"os"

	"github.com/tripwise/cityguide/internal/cache"
	"github.com/tripwise/cityguide/internal/config"
	"github.com/tripwise/cityguide/internal/guide"
	"github.com/tripwise/cityguide/internal/images"
	"github.com/tripwise/cityguide/internal/logger"
	"github.com/tripwise/cityguide/internal/mediawiki"
	"github.com/tripwise/cityguide/internal/news"
	"github.com/tripwise/cityguide/internal/tips"
	"github.com/tripwise/cityguide/internal/web"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := mediawiki.New(cfg.RequestTimeout, cfg.APIRateLimit, cfg.UserAgent)

	guideService := guide.NewService(guide.Deps{
		Fetcher:          client,
		Extracts:         client,
		Searcher:         client,
		Tips:             tips.NewExtractor(client),
		Images:           images.NewResolver(client),
		Cache:            cache.New(cfg.GuideCacheTTL),
		FallbackLanguage: cfg.FallbackLanguage,
		ImageLimit:       cfg.DefaultImageLimit,
	})

	feeds, err := news.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Warn("feeds config not loaded, headlines disabled", "path", cfg.FeedsConfigPath, "error", err)
	}
	newsService := news.NewService(feeds, cache.New(cfg.HeadlineCacheTTL), cfg.MaxHeadlines)

	server := &web.Server{
		Guide:       guideService,
		News:        newsService,
		Addr:        cfg.ListenAddr,
		DefaultLang: cfg.DefaultLanguage,
		SearchLimit: cfg.SearchLimit,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
