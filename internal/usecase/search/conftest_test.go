package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/usecase/query"
)

// --- Mocks ---

type mockEmbedder struct {
	mu     sync.Mutex
	calls  []string
	errFor map[string]error
	errAll error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if m.errAll != nil {
		return domain.EmbeddingResult{}, m.errAll
	}
	if err, ok := m.errFor[text]; ok {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: []float32{float32(len(text))}}, nil
}

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockRetriever returns a fresh copy of the catalog for every lookup.
type mockRetriever struct {
	catalog []domain.Candidate
	err     error

	mu        sync.Mutex
	threshold float64
	limit     int
}

func (m *mockRetriever) Similar(_ context.Context, _ []float32, threshold float64, limit int) ([]domain.Candidate, error) {
	m.mu.Lock()
	m.threshold, m.limit = threshold, limit
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Candidate(nil), m.catalog...), nil
}

type mockInitializer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockInitializer) Initialize(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

var errUpstream = errors.New("upstream unavailable")

// --- Fixtures ---

func weddingCatalog() []domain.Candidate {
	return []domain.Candidate{
		{ID: "belt", Content: "Name: Leather Belt\nDescription: Brown belt.", Similarity: 0.90},
		{ID: "gown", Content: "Name: Bridal Gown\nGender: Women\nDescription: Lace wedding dress for women.", Similarity: 0.85},
		{ID: "suit", Content: "Name: Classic Wedding Suit\nGender: Men\nDescription: Two-piece suit for men.", Similarity: 0.80},
	}
}

func newTestService(t *testing.T, emb *mockEmbedder, ret *mockRetriever, opts ...Option) *Service {
	t.Helper()
	tr := query.NewTranslator()
	return New(emb, ret, query.NewExtractor(tr), query.NewExpander(tr), Config{}, zap.NewNop(), opts...)
}
