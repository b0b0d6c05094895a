// Package web exposes the guide engine to the surrounding application as a
// small JSON API, plus the health and metrics endpoints.
package web

import (
	"net/http"

	"github.com/tripwise/cityguide/internal/guide"
	"github.com/tripwise/cityguide/internal/logger"
	"github.com/tripwise/cityguide/internal/news"
)

type Server struct {
	Guide       *guide.Service
	News        *news.Service
	Addr        string
	DefaultLang string
	SearchLimit int
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/guide", s.handleGuide)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/article", s.handleArticle)
	mux.HandleFunc("/api/sections", s.handleSections)
	mux.HandleFunc("/api/images", s.handleImages)
	mux.HandleFunc("/api/headlines", s.handleHeadlines)

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	logger.Info("starting server", "addr", s.Addr)
	return http.ListenAndServe(s.Addr, mux)
}
