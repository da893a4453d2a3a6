package embcache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stylebot/internal/domain"
)

// Defaults applied when Config fields are zero.
const (
	DefaultTTL               = time.Hour
	DefaultMaxEntries        = 1000
	DefaultWarmUpConcurrency = 8
)

// evictFraction of MaxEntries is dropped, oldest first, when the cache is full.
const evictFraction = 0.1

// Config bounds the cache.
type Config struct {
	TTL               time.Duration
	MaxEntries        int
	WarmUpConcurrency int
}

// Metrics are the optional collectors the cache reports to. Nil fields are skipped.
type Metrics struct {
	Lookups   *prometheus.CounterVec // label "result": hit, miss, expired
	Evictions *prometheus.CounterVec // label "reason": capacity, expired
	Entries   prometheus.Gauge
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Total      int
	Valid      int
	Expired    int
	TTL        time.Duration
	MaxEntries int
}

// WarmUpResult reports the outcome of pre-embedding a single query.
type WarmUpResult struct {
	Query string
	Err   error
}

type entry struct {
	vector    []float32
	createdAt time.Time
}

// Option customizes a CachedEmbedder.
type Option func(*CachedEmbedder)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *CachedEmbedder) { c.now = now }
}

// CachedEmbedder memoizes embeddings in process memory, keyed by lower-cased trimmed text.
// The lock is held only around map access, never across the upstream call.
type CachedEmbedder struct {
	inner   domain.Embedder
	cfg     Config
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a caching decorator around inner.
func New(inner domain.Embedder, cfg Config, m Metrics, logger *zap.Logger, opts ...Option) *CachedEmbedder {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.WarmUpConcurrency <= 0 {
		cfg.WarmUpConcurrency = DefaultWarmUpConcurrency
	}
	c := &CachedEmbedder{
		inner:   inner,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Normalize returns the cache key for text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Embed returns a cached vector or calls the inner embedder with the normalized text.
// Cache hit: TotalTokens = 0 (no real tokens consumed).
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := Normalize(text)

	if vec, ok := c.lookup(key); ok {
		c.logger.Debug("Embedding cache hit", zap.String("text", key))
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	result, err := c.inner.Embed(ctx, key)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.store(key, result.Embedding)
	return result, nil
}

func (c *CachedEmbedder) lookup(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.inc(c.metrics.Lookups, "miss")
		return nil, false
	}
	if c.expired(e, c.now()) {
		delete(c.entries, key)
		c.inc(c.metrics.Lookups, "expired")
		c.inc(c.metrics.Evictions, "expired")
		c.setEntries()
		return nil, false
	}
	c.inc(c.metrics.Lookups, "hit")
	return e.vector, true
}

func (c *CachedEmbedder) store(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cfg.MaxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry{vector: vec, createdAt: c.now()}
	c.setEntries()
}

// evictOldest drops the oldest tenth of MaxEntries by insertion time. Caller holds mu.
func (c *CachedEmbedder) evictOldest() {
	n := max(int(float64(c.cfg.MaxEntries)*evictFraction), 1)

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].createdAt.Before(c.entries[keys[j]].createdAt)
	})
	if n > len(keys) {
		n = len(keys)
	}
	for _, k := range keys[:n] {
		delete(c.entries, k)
	}
	if c.metrics.Evictions != nil {
		c.metrics.Evictions.WithLabelValues("capacity").Add(float64(n))
	}
	c.logger.Debug("Evicted oldest embeddings", zap.Int("count", n))
}

// Cleanup purges expired entries and returns how many were removed.
func (c *CachedEmbedder) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 && c.metrics.Evictions != nil {
		c.metrics.Evictions.WithLabelValues("expired").Add(float64(removed))
	}
	c.setEntries()
	c.logger.Debug("Cleaned up expired embeddings", zap.Int("removed", removed))
	return removed
}

// Stats counts valid and expired entries at the current time.
func (c *CachedEmbedder) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := Stats{Total: len(c.entries), TTL: c.cfg.TTL, MaxEntries: c.cfg.MaxEntries}
	for _, e := range c.entries {
		if c.expired(e, now) {
			s.Expired++
		} else {
			s.Valid++
		}
	}
	return s
}

// Clear drops every entry.
func (c *CachedEmbedder) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.setEntries()
}

// WarmUp embeds queries concurrently. A failing query is logged and reported
// in its result slot; it never aborts the others.
func (c *CachedEmbedder) WarmUp(ctx context.Context, queries []string) []WarmUpResult {
	results := make([]WarmUpResult, len(queries))

	var g errgroup.Group
	g.SetLimit(c.cfg.WarmUpConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			_, err := c.Embed(ctx, q)
			results[i] = WarmUpResult{Query: q, Err: err}
			if err != nil {
				c.logger.Warn("Failed to warm up embedding", zap.String("query", q), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *CachedEmbedder) expired(e entry, now time.Time) bool {
	return now.Sub(e.createdAt) >= c.cfg.TTL
}

func (c *CachedEmbedder) inc(vec *prometheus.CounterVec, label string) {
	if vec != nil {
		vec.WithLabelValues(label).Inc()
	}
}

func (c *CachedEmbedder) setEntries() {
	if c.metrics.Entries != nil {
		c.metrics.Entries.Set(float64(len(c.entries)))
	}
}
