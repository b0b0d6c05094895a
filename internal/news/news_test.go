package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tripwise/cityguide/internal/cache"
)

func TestLoadFeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yaml")
	content := "feeds:\n  - https://example.org/a.rss\n  - https://example.org/b.rss\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if len(feeds) != 2 || feeds[0] != "https://example.org/a.rss" {
		t.Errorf("unexpected feeds: %+v", feeds)
	}
}

const feedXML = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Travel Wire</title>
<item><title>Lisboa named top city break destination</title><link>https://example.org/1</link></item>
<item><title>Airline adds new routes to Tokyo</title><link>https://example.org/2</link></item>
<item><title>Where to eat in Lisboa this spring</title><link>https://example.org/3</link></item>
</channel></rss>`

func TestDestinationHeadlinesFiltersByPlace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	svc := NewService([]string{server.URL}, cache.New(time.Hour), 5)
	headlines := svc.DestinationHeadlines(context.Background(), "Lisboa")

	if len(headlines) != 2 {
		t.Fatalf("expected 2 matching headlines, got %d: %+v", len(headlines), headlines)
	}
	for _, h := range headlines {
		if h.Source != "Travel Wire" {
			t.Errorf("expected feed title as source, got %q", h.Source)
		}
	}
}

func TestDestinationHeadlinesFeedFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService([]string{server.URL}, cache.New(time.Hour), 5)
	headlines := svc.DestinationHeadlines(context.Background(), "Lisboa")

	if headlines == nil || len(headlines) != 0 {
		t.Errorf("expected empty headline list on feed failure, got %+v", headlines)
	}
}

func TestDestinationHeadlinesCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	svc := NewService([]string{server.URL}, cache.New(time.Hour), 5)
	svc.DestinationHeadlines(context.Background(), "Lisboa")
	svc.DestinationHeadlines(context.Background(), "Lisboa")

	if calls != 1 {
		t.Errorf("expected a single feed fetch across two lookups, got %d", calls)
	}
}
