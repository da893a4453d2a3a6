// Package cachemgr owns the lifecycle of the process-wide query caches:
// startup warm-up, periodic expiry and bulk clearing.
package cachemgr

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/lexicon"
	"github.com/kailas-cloud/stylebot/internal/repository/embcache"
)

// DefaultMaintenanceInterval is how often expired embeddings are purged.
const DefaultMaintenanceInterval = 30 * time.Minute

// Config controls maintenance and warm-up.
type Config struct {
	MaintenanceInterval time.Duration
	// WarmUpQueries replaces the built-in common query list when non-empty.
	WarmUpQueries []string
	// SkipWarmUp disables warm-up in Initialize.
	SkipWarmUp bool
}

// Statistics is a timestamped snapshot of cache state.
type Statistics struct {
	Embedding   embcache.Stats
	Initialized bool
	Timestamp   time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for statistics timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager coordinates the embedding cache and the query-side memo tables.
type Manager struct {
	embeddings EmbeddingCache
	clearers   []Clearer
	cfg        Config
	logger     *zap.Logger
	now        func() time.Time

	// initMu serializes Initialize and Cleanup.
	initMu      sync.Mutex
	mu          sync.Mutex
	initialized bool
	stop        chan struct{}
	done        chan struct{}
}

// New creates a Manager. clearers are emptied by ClearAllCaches after the embedding cache.
func New(embeddings EmbeddingCache, cfg Config, logger *zap.Logger, opts ...Option) *Manager {
	if cfg.MaintenanceInterval <= 0 {
		cfg.MaintenanceInterval = DefaultMaintenanceInterval
	}
	if len(cfg.WarmUpQueries) == 0 {
		cfg.WarmUpQueries = lexicon.CommonQueries
	}
	m := &Manager{embeddings: embeddings, cfg: cfg, logger: logger, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Track registers more caches for ClearAllCaches.
func (m *Manager) Track(c ...Clearer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearers = append(m.clearers, c...)
}

// Initialize starts periodic maintenance and warms the embedding cache with common queries.
// Calling it again is a no-op. Warm-up failures are logged and never fail initialization.
func (m *Manager) Initialize(ctx context.Context) error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.IsInitialized() {
		return nil
	}

	m.logger.Info("Initializing cache manager",
		zap.Duration("maintenance_interval", m.cfg.MaintenanceInterval),
		zap.Int("warmup_queries", len(m.cfg.WarmUpQueries)),
	)
	m.startMaintenance()

	if !m.cfg.SkipWarmUp {
		m.WarmUp(ctx)
	}

	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()
	return nil
}

// IsInitialized reports whether Initialize has completed since the last Cleanup.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// WarmUp embeds the configured common queries and returns how many failed.
func (m *Manager) WarmUp(ctx context.Context) int {
	return m.Preload(ctx, m.cfg.WarmUpQueries)
}

// Preload embeds queries ahead of anticipated searches and returns how many failed.
func (m *Manager) Preload(ctx context.Context, queries []string) int {
	start := time.Now()
	failed := 0
	for _, r := range m.embeddings.WarmUp(ctx, queries) {
		if r.Err != nil {
			failed++
		}
	}
	m.logger.Info("Preloaded query embeddings",
		zap.Int("queries", len(queries)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
	return failed
}

// PerformMaintenance purges expired embeddings and returns how many were removed.
func (m *Manager) PerformMaintenance() int {
	removed := m.embeddings.Cleanup()
	if removed > 0 {
		st := m.Statistics()
		m.logger.Info("Cache maintenance completed",
			zap.Int("removed", removed),
			zap.Int("total", st.Embedding.Total),
			zap.Int("valid", st.Embedding.Valid),
		)
	}
	return removed
}

// ClearAllCaches empties the embedding cache and every tracked cache.
func (m *Manager) ClearAllCaches() {
	m.embeddings.Clear()

	m.mu.Lock()
	clearers := append([]Clearer(nil), m.clearers...)
	m.mu.Unlock()

	for _, c := range clearers {
		c.ClearCache()
	}
	m.logger.Info("All caches cleared", zap.Int("caches", len(clearers)+1))
}

// Statistics returns the embedding cache stats with the initialization flag.
func (m *Manager) Statistics() Statistics {
	return Statistics{
		Embedding:   m.embeddings.Stats(),
		Initialized: m.IsInitialized(),
		Timestamp:   m.now(),
	}
}

// HitRate is the share of cached embeddings that are still within TTL.
func (m *Manager) HitRate() float64 {
	st := m.embeddings.Stats()
	return float64(st.Valid) / float64(max(st.Total, 1))
}

// Cleanup stops periodic maintenance and resets the initialization state.
func (m *Manager) Cleanup() {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.initialized = false
	m.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	m.logger.Info("Cache manager stopped")
}

func (m *Manager) startMaintenance() {
	stop := make(chan struct{})
	done := make(chan struct{})

	m.mu.Lock()
	m.stop, m.done = stop, done
	m.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.cfg.MaintenanceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.PerformMaintenance()
			case <-stop:
				return
			}
		}
	}()
}
