// Package mediawiki is a thin client for the public MediaWiki APIs the engine
// reads from: the REST page summary, the action API for plain-text extracts,
// rendered article HTML and page search, and the shared media repository's
// file search. All endpoints are unauthenticated HTTPS GET.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/tripwise/cityguide/internal/sources"
)

// Article is the normalized summary record for one place from one source.
type Article struct {
	Title          string     `json:"title"`
	Extract        string     `json:"extract"`
	CanonicalURL   string     `json:"canonicalUrl"`
	Thumbnail      string     `json:"thumbnail,omitempty"`
	SourceLanguage string     `json:"sourceLanguage"`
	LastModified   *time.Time `json:"lastModified,omitempty"`
}

// SearchResult is one typeahead candidate.
type SearchResult struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// ImageCandidate is one raw hit from the media repository, before filtering.
type ImageCandidate struct {
	Title  string
	URL    string
	Mime   string
	Width  int
	Height int
}

// PageImages is the encyclopedia's own image inventory for a page, used as
// the fallback path when the media repository is unavailable.
type PageImages struct {
	Thumbnail string
	Files     []string // file page titles, e.g. "File:Lisboa at night.jpg"
}

type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	userAgent     string
	scheme        string
	commonsDomain string
}

type Option func(*Client)

// WithScheme overrides the URL scheme, for tests against local servers.
func WithScheme(scheme string) Option {
	return func(c *Client) { c.scheme = scheme }
}

// WithCommonsDomain overrides the media repository host.
func WithCommonsDomain(domain string) Option {
	return func(c *Client) { c.commonsDomain = domain }
}

func New(timeout time.Duration, rps float64, userAgent string, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		userAgent:     userAgent,
		scheme:        "https",
		commonsDomain: "commons.wikimedia.org",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSummary retrieves the short summary record for place from one source.
// It performs exactly one network call; trying the next source on failure is
// the resolver's job, not this method's.
func (c *Client) FetchSummary(ctx context.Context, src sources.Source, place string) (*Article, error) {
	endpoint := fmt.Sprintf("%s://%s/api/rest_v1/page/summary/%s",
		c.scheme, src.Domain, url.PathEscape(strings.ReplaceAll(place, " ", "_")))

	var body struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		Description string `json:"description"`
		Lang        string `json:"lang"`
		Timestamp   string `json:"timestamp"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if body.Extract == "" && body.Description == "" {
		return nil, fmt.Errorf("empty summary for %q on %s", place, src.Domain)
	}

	extract := body.Extract
	if extract == "" {
		extract = body.Description
	}

	article := &Article{
		Title:          body.Title,
		Extract:        extract,
		CanonicalURL:   body.ContentURLs.Desktop.Page,
		Thumbnail:      body.Thumbnail.Source,
		SourceLanguage: src.Lang,
	}
	if ts, err := time.Parse(time.RFC3339, body.Timestamp); err == nil {
		article.LastModified = &ts
	}
	return article, nil
}

// FetchExtract retrieves the full article body as plain text, with wiki-style
// "==" heading markers preserved for the section parser.
func (c *Client) FetchExtract(ctx context.Context, src sources.Source, place string) (string, error) {
	endpoint := c.actionURL(src.Domain, url.Values{
		"action":          {"query"},
		"prop":            {"extracts"},
		"explaintext":     {"1"},
		"exsectionformat": {"wiki"},
		"redirects":       {"1"},
		"titles":          {place},
		"format":          {"json"},
	})

	var body struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return "", err
	}
	for _, page := range body.Query.Pages {
		if page.Extract != "" {
			return page.Extract, nil
		}
	}
	return "", fmt.Errorf("no extract for %q on %s", place, src.Domain)
}

// FetchRenderedHTML retrieves the parsed article markup as a navigable
// document, for traversals that need sibling block elements.
func (c *Client) FetchRenderedHTML(ctx context.Context, src sources.Source, place string) (*goquery.Document, error) {
	endpoint := c.actionURL(src.Domain, url.Values{
		"action":    {"parse"},
		"page":      {place},
		"prop":      {"text"},
		"redirects": {"1"},
		"format":    {"json"},
	})

	var body struct {
		Parse struct {
			Text map[string]string `json:"text"`
		} `json:"parse"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	html := body.Parse.Text["*"]
	if html == "" {
		return nil, fmt.Errorf("no rendered text for %q on %s", place, src.Domain)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing article HTML: %w", err)
	}
	return doc, nil
}

// SearchPages runs a full-text page search on one source, returning results
// in relevance order with description and thumbnail where available.
func (c *Client) SearchPages(ctx context.Context, src sources.Source, query string, limit int) ([]SearchResult, error) {
	endpoint := c.actionURL(src.Domain, url.Values{
		"action":      {"query"},
		"generator":   {"search"},
		"gsrsearch":   {query},
		"gsrlimit":    {fmt.Sprintf("%d", limit)},
		"prop":        {"pageimages|description"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {"160"},
		"format":      {"json"},
	})

	var body struct {
		Query struct {
			Pages map[string]struct {
				Title       string `json:"title"`
				Index       int    `json:"index"`
				Description string `json:"description"`
				Thumbnail   struct {
					Source string `json:"source"`
				} `json:"thumbnail"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}

	ordered := make([]SearchResult, limit)
	count := 0
	for _, page := range body.Query.Pages {
		idx := page.Index - 1
		if idx < 0 || idx >= limit {
			continue
		}
		ordered[idx] = SearchResult{
			Title:       page.Title,
			Description: page.Description,
			Thumbnail:   page.Thumbnail.Source,
		}
		count++
	}

	results := make([]SearchResult, 0, count)
	for _, r := range ordered {
		if r.Title != "" {
			results = append(results, r)
		}
	}
	return results, nil
}

// SearchCommonsImages searches the shared media repository's file namespace,
// with thumbnails pre-sized to width px.
func (c *Client) SearchCommonsImages(ctx context.Context, query string, limit, width int) ([]ImageCandidate, error) {
	endpoint := c.actionURL(c.commonsDomain, url.Values{
		"action":       {"query"},
		"generator":    {"search"},
		"gsrsearch":    {query},
		"gsrnamespace": {"6"},
		"gsrlimit":     {fmt.Sprintf("%d", limit)},
		"prop":         {"imageinfo"},
		"iiprop":       {"url|mime|size"},
		"iiurlwidth":   {fmt.Sprintf("%d", width)},
		"format":       {"json"},
	})

	var body struct {
		Query struct {
			Pages map[string]struct {
				Title     string `json:"title"`
				Index     int    `json:"index"`
				ImageInfo []struct {
					URL      string `json:"url"`
					ThumbURL string `json:"thumburl"`
					Mime     string `json:"mime"`
					Width    int    `json:"width"`
					Height   int    `json:"height"`
				} `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}

	ordered := make([]ImageCandidate, limit)
	for _, page := range body.Query.Pages {
		idx := page.Index - 1
		if idx < 0 || idx >= limit || len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		imgURL := info.ThumbURL
		if imgURL == "" {
			imgURL = info.URL
		}
		ordered[idx] = ImageCandidate{
			Title:  page.Title,
			URL:    imgURL,
			Mime:   info.Mime,
			Width:  info.Width,
			Height: info.Height,
		}
	}

	candidates := make([]ImageCandidate, 0, limit)
	for _, cand := range ordered {
		if cand.Title != "" {
			candidates = append(candidates, cand)
		}
	}
	return candidates, nil
}

// FetchPageImages retrieves a page's own lead thumbnail and in-article image
// titles from one source.
func (c *Client) FetchPageImages(ctx context.Context, src sources.Source, place string) (*PageImages, error) {
	endpoint := c.actionURL(src.Domain, url.Values{
		"action":      {"query"},
		"titles":      {place},
		"prop":        {"pageimages|images"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {"800"},
		"imlimit":     {"50"},
		"redirects":   {"1"},
		"format":      {"json"},
	})

	var body struct {
		Query struct {
			Pages map[string]struct {
				Thumbnail struct {
					Source string `json:"source"`
				} `json:"thumbnail"`
				Images []struct {
					Title string `json:"title"`
				} `json:"images"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}

	for _, page := range body.Query.Pages {
		result := &PageImages{Thumbnail: page.Thumbnail.Source}
		for _, img := range page.Images {
			result.Files = append(result.Files, img.Title)
		}
		if result.Thumbnail != "" || len(result.Files) > 0 {
			return result, nil
		}
	}
	return nil, fmt.Errorf("no images for %q on %s", place, src.Domain)
}

// FilePathURL builds the direct-file URL for a file page title on a source.
func FilePathURL(src sources.Source, fileTitle string) string {
	name := strings.TrimPrefix(fileTitle, "File:")
	name = strings.TrimPrefix(name, "Ficheiro:")
	return fmt.Sprintf("https://%s/wiki/Special:FilePath/%s", src.Domain, url.PathEscape(name))
}

func (c *Client) actionURL(domain string, params url.Values) string {
	return fmt.Sprintf("%s://%s/w/api.php?%s", c.scheme, domain, params.Encode())
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
