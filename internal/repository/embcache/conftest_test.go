package embcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
)

type mockEmbedder struct {
	mu     sync.Mutex
	calls  []string
	result domain.EmbeddingResult
	errFor map[string]error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if err, ok := m.errFor[text]; ok {
		return domain.EmbeddingResult{}, err
	}
	return m.result, nil
}

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCachedEmbedder(t *testing.T, cfg Config) (*CachedEmbedder, *mockEmbedder, *fakeClock) {
	t.Helper()
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 4,
		TotalTokens:  4,
	}}
	clock := newFakeClock()
	ce := New(inner, cfg, Metrics{}, zap.NewNop(), WithClock(clock.Now))
	return ce, inner, clock
}
