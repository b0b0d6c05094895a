// Package images builds the curated image set for a place: a media
// repository search filtered down to photographic raster assets, with the
// encyclopedia's own page images as the fallback path.
package images

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripwise/cityguide/internal/logger"
	"github.com/tripwise/cityguide/internal/mediawiki"
	"github.com/tripwise/cityguide/internal/metrics"
	"github.com/tripwise/cityguide/internal/sources"
)

// Image is one curated guide image.
type Image struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// thumbWidth is the pre-sized thumbnail width requested from the repository.
const thumbWidth = 800

// minDimension rejects icon-like, low-resolution assets.
const minDimension = 400

var acceptedMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Title fragments that mark non-photographic files.
var rejectedTitleTerms = []string{"logo", "flag", "bandeira", "coat", "brasão", "map", "mapa"}

var rasterExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Searcher is the slice of the wiki client the resolver needs.
type Searcher interface {
	SearchCommonsImages(ctx context.Context, query string, limit, width int) ([]mediawiki.ImageCandidate, error)
	FetchPageImages(ctx context.Context, src sources.Source, place string) (*mediawiki.PageImages, error)
}

type Resolver struct {
	client Searcher
}

func NewResolver(client Searcher) *Resolver {
	return &Resolver{client: client}
}

// ResolveImages returns at most limit deduplicated images for the place. The
// repository is asked for 2×limit candidates to leave filtering headroom; the
// encyclopedia fallback is used only when the repository call itself fails.
func (r *Resolver) ResolveImages(ctx context.Context, place, lang string, limit int) ([]Image, error) {
	candidates, err := r.client.SearchCommonsImages(ctx, place, 2*limit, thumbWidth)
	if err != nil {
		logger.Warn("media repository search failed, falling back", "place", place, "error", err)
		metrics.Global.IncrementImageFallbacks()
		return r.fallback(ctx, place, lang, limit)
	}
	return Filter(candidates, limit), nil
}

// Filter applies the acceptance rules in order: raster mime, minimum
// dimensions, non-photographic title rejection; then dedups by title and
// truncates to limit.
func Filter(candidates []mediawiki.ImageCandidate, limit int) []Image {
	seen := make(map[string]bool)
	result := make([]Image, 0, limit)

	for _, cand := range candidates {
		if len(result) >= limit {
			break
		}
		if !acceptedMimes[cand.Mime] {
			continue
		}
		if cand.Width < minDimension || cand.Height < minDimension {
			continue
		}
		if hasRejectedTerm(cand.Title) {
			continue
		}
		if seen[cand.Title] {
			continue
		}
		seen[cand.Title] = true
		result = append(result, Image{URL: cand.URL, Title: cand.Title})
	}
	return result
}

// fallback queries the encyclopedia's page-image inventory, keeping the page
// thumbnail first and only file titles with a recognized raster extension.
func (r *Resolver) fallback(ctx context.Context, place, lang string, limit int) ([]Image, error) {
	src := sources.Encyclopedia(lang)
	pageImages, err := r.client.FetchPageImages(ctx, src, place)
	if err != nil {
		return nil, fmt.Errorf("image fallback for %q: %w", place, err)
	}

	seen := make(map[string]bool)
	result := make([]Image, 0, limit)

	if pageImages.Thumbnail != "" {
		seen[place] = true
		result = append(result, Image{URL: pageImages.Thumbnail, Title: place})
	}

	for _, file := range pageImages.Files {
		if len(result) >= limit {
			break
		}
		if !hasRasterExtension(file) || hasRejectedTerm(file) {
			continue
		}
		title := strings.TrimPrefix(file, "File:")
		title = strings.TrimPrefix(title, "Ficheiro:")
		if seen[title] {
			continue
		}
		seen[title] = true
		result = append(result, Image{URL: mediawiki.FilePathURL(src, file), Title: title})
	}
	return result, nil
}

func hasRejectedTerm(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range rejectedTitleTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func hasRasterExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range rasterExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
