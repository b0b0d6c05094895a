// Package news enriches guides with recent travel headlines mentioning the
// destination, pulled from a configurable list of RSS feeds. It is optional:
// a failed or empty fetch never affects guide assembly.
package news

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/tripwise/cityguide/internal/cache"
	"github.com/tripwise/cityguide/internal/logger"
	"github.com/tripwise/cityguide/internal/retry"
)

// FeedsConfig is the YAML config structure:
//
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Headline is one feed item that mentions the destination.
type Headline struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	Published time.Time `json:"published,omitempty"`
}

type Service struct {
	feeds  []string
	parser *gofeed.Parser
	cache  *cache.Cache
	max    int
}

func NewService(feeds []string, c *cache.Cache, max int) *Service {
	return &Service{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		cache:  c,
		max:    max,
	}
}

// DestinationHeadlines returns up to max recent items mentioning the place.
// Feed failures are logged and skipped; the result is cached.
func (s *Service) DestinationHeadlines(ctx context.Context, place string) []Headline {
	key := cache.Key("headlines", place)
	if v, ok := s.cache.Get(key); ok {
		return v.([]Headline)
	}

	var headlines []Headline
	for _, feedURL := range s.feeds {
		if len(headlines) >= s.max {
			break
		}

		var feed *gofeed.Feed
		err := retry.Do(ctx, retry.Config{MaxAttempts: 2, Delay: 2 * time.Second}, func() error {
			var parseErr error
			feed, parseErr = s.parser.ParseURLWithContext(feedURL, ctx)
			return parseErr
		})
		if err != nil {
			logger.Warn("feed fetch failed", "feed", feedURL, "error", err)
			continue
		}

		for _, item := range feed.Items {
			if len(headlines) >= s.max {
				break
			}
			if !mentionsPlace(item, place) {
				continue
			}
			h := Headline{
				Title:  item.Title,
				Link:   item.Link,
				Source: feed.Title,
			}
			if item.PublishedParsed != nil {
				h.Published = *item.PublishedParsed
			}
			headlines = append(headlines, h)
		}
	}

	if headlines == nil {
		headlines = []Headline{}
	}
	s.cache.Set(key, headlines)
	return headlines
}

func mentionsPlace(item *gofeed.Item, place string) bool {
	place = strings.ToLower(strings.TrimSpace(place))
	if place == "" {
		return false
	}
	return strings.Contains(strings.ToLower(item.Title), place) ||
		strings.Contains(strings.ToLower(item.Description), place)
}
