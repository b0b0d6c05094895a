package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	GuidesBuilt     int64
	CacheHits       int64
	CacheMisses     int64
	SourceFallbacks int64
	SearchQueries   int64
	ImageFallbacks  int64
	TipsExtracted   int64

	// Timings
	LastBuildTime    time.Duration
	TotalBuildTime   time.Duration
	AverageBuildTime time.Duration
	BuildCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementGuidesBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GuidesBuilt++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *Metrics) IncrementSourceFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFallbacks++
}

func (m *Metrics) IncrementSearchQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchQueries++
}

func (m *Metrics) IncrementImageFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageFallbacks++
}

func (m *Metrics) AddTipsExtracted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TipsExtracted += int64(n)
}

func (m *Metrics) RecordBuildTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastBuildTime = duration
	m.TotalBuildTime += duration
	m.BuildCount++

	if m.BuildCount > 0 {
		m.AverageBuildTime = m.TotalBuildTime / time.Duration(m.BuildCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"guides_built":          m.GuidesBuilt,
		"cache_hits":            m.CacheHits,
		"cache_misses":          m.CacheMisses,
		"source_fallbacks":      m.SourceFallbacks,
		"search_queries":        m.SearchQueries,
		"image_fallbacks":       m.ImageFallbacks,
		"tips_extracted":        m.TipsExtracted,
		"last_build_time_ms":    m.LastBuildTime.Milliseconds(),
		"average_build_time_ms": m.AverageBuildTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
