package guide

import (
	"github.com/tripwise/cityguide/internal/images"
	"github.com/tripwise/cityguide/internal/mediawiki"
)

// LeadSectionTitle is the sentinel title given to the untitled text before an
// article's first heading.
const LeadSectionTitle = "Introduction"

// Section is one titled, ordered span of an article's plain-text body.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Level   int    `json:"level"`
}

// CityGuide is the assembled destination guide. It is built once per
// successful lookup, cached, and never mutated afterwards.
type CityGuide struct {
	CityName string             `json:"cityName"`
	Summary  string             `json:"summary,omitempty"`
	History  string             `json:"history,omitempty"`
	Culture  string             `json:"culture,omitempty"`
	Tourism  string             `json:"tourism,omitempty"`
	Tips     []string           `json:"tips"`
	Images   []images.Image     `json:"images"`
	Article  *mediawiki.Article `json:"article"`
	Sections []Section          `json:"sections"`
}
