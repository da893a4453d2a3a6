package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/facet"
)

func TestSearch_WeddingSuitForMen(t *testing.T) {
	emb := &mockEmbedder{}
	ret := &mockRetriever{catalog: weddingCatalog()}
	svc := newTestService(t, emb, ret)

	out, err := svc.Search(context.Background(), "wedding suit for men", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Degraded() {
		t.Error("expected healthy outcome")
	}
	if out.Variants != 4 {
		t.Errorf("expected 4 variants, got %d", out.Variants)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected gown filtered out leaving 2 results, got %d", len(out.Results))
	}
	top := out.Results[0]
	if top.ID != "suit" {
		t.Fatalf("expected suit first, got %q", top.ID)
	}
	if top.Label == nil || top.Label.Gender != facet.Male || top.Label.Category != facet.FormalWear {
		t.Errorf("unexpected label %+v", top.Label)
	}
	if top.SourceQuery != "wedding suit for men" {
		t.Errorf("expected source query to be the original, got %q", top.SourceQuery)
	}
	// 0.80 + gender 0.4 + category 0.3 + original 0.1 + keywords 0.2
	if top.FinalScore < 1.79 || top.FinalScore > 1.81 {
		t.Errorf("expected final score ~1.8, got %f", top.FinalScore)
	}
	if out.Results[1].ID != "belt" {
		t.Errorf("expected belt second, got %q", out.Results[1].ID)
	}
	if ret.threshold != 0.7 || ret.limit != 8 {
		t.Errorf("expected threshold 0.7 and cap 8, got %v and %d", ret.threshold, ret.limit)
	}
}

func TestSearch_GenderFilterKeepsUnisex(t *testing.T) {
	ret := &mockRetriever{catalog: []domain.Candidate{
		{ID: "m", Content: "Shirt for men", Similarity: 0.9},
		{ID: "f", Content: "Blouse for women", Similarity: 0.9},
		{ID: "u", Content: "Scarf for men and women", Similarity: 0.9},
	}}
	svc := newTestService(t, &mockEmbedder{}, ret)

	out, err := svc.Search(context.Background(), "shirt for women", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range out.Results {
		if r.Label.Gender == facet.Male {
			t.Errorf("male candidate %q survived a female query", r.ID)
		}
	}
	if len(out.Results) != 2 {
		t.Errorf("expected female and unisex results, got %d", len(out.Results))
	}
}

func TestSearch_NoGenderKeepsAll(t *testing.T) {
	ret := &mockRetriever{catalog: []domain.Candidate{
		{ID: "m", Content: "Shirt for men", Similarity: 0.9},
		{ID: "f", Content: "Blouse for women", Similarity: 0.8},
	}}
	svc := newTestService(t, &mockEmbedder{}, ret)

	out, _ := svc.Search(context.Background(), "linen shirt", 5)
	if len(out.Results) != 2 {
		t.Errorf("expected both results without a gender in the query, got %d", len(out.Results))
	}
}

func TestSearch_DedupesAcrossVariants(t *testing.T) {
	ret := &mockRetriever{catalog: []domain.Candidate{
		{Content: "No id chunk about shoes", Similarity: 0.8},
		{ID: "a", Content: "Sneakers", Similarity: 0.75},
	}}
	svc := newTestService(t, &mockEmbedder{}, ret)

	out, err := svc.Search(context.Background(), "wedding suit for men", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 2 {
		t.Errorf("expected 2 unique results across 4 variants, got %d", len(out.Results))
	}
}

func TestSearch_Truncates(t *testing.T) {
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{catalog: weddingCatalog()})

	out, _ := svc.Search(context.Background(), "wedding", 1)
	if len(out.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(out.Results))
	}
}

func TestSearch_ZeroCandidates(t *testing.T) {
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{})

	out, err := svc.Search(context.Background(), "purple hat", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 0 || out.Degraded() {
		t.Errorf("expected empty healthy outcome, got %+v", out)
	}
}

func TestSearch_AllVariantsFail(t *testing.T) {
	emb := &mockEmbedder{errAll: errUpstream}
	svc := newTestService(t, emb, &mockRetriever{catalog: weddingCatalog()})

	out, err := svc.Search(context.Background(), "wedding suit for men", 5)
	if err != nil {
		t.Fatalf("all-failed must not be an error, got %v", err)
	}
	if len(out.Results) != 0 {
		t.Errorf("expected no results, got %d", len(out.Results))
	}
	if out.FailedVariants != out.Variants || !out.Degraded() {
		t.Errorf("expected every variant failed, got %d/%d", out.FailedVariants, out.Variants)
	}

	before := emb.callCount()
	_, _ = svc.Search(context.Background(), "wedding suit for men", 5)
	if emb.callCount() == before {
		t.Error("degraded outcome must not be cached")
	}
}

func TestSearch_PartialFailure(t *testing.T) {
	emb := &mockEmbedder{errFor: map[string]error{"wedding suit men": errUpstream}}
	svc := newTestService(t, emb, &mockRetriever{catalog: weddingCatalog()})

	out, err := svc.Search(context.Background(), "wedding suit for men", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FailedVariants != 1 {
		t.Errorf("expected 1 failed variant, got %d", out.FailedVariants)
	}
	if len(out.Results) == 0 {
		t.Error("sibling variants must still contribute")
	}
}

func TestSearch_RetrieverError(t *testing.T) {
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{err: errUpstream})

	out, err := svc.Search(context.Background(), "shoes", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Degraded() || len(out.Results) != 0 {
		t.Errorf("expected degraded empty outcome, got %+v", out)
	}
}

func TestSearch_CachesResults(t *testing.T) {
	emb := &mockEmbedder{}
	svc := newTestService(t, emb, &mockRetriever{catalog: weddingCatalog()})
	ctx := context.Background()

	first, _ := svc.Search(ctx, "wedding suit for men", 5)
	calls := emb.callCount()

	first.Results[0].ID = "mutated"
	second, _ := svc.Search(ctx, "wedding suit for men", 5)
	if emb.callCount() != calls {
		t.Error("expected cache hit without embedding calls")
	}
	if second.Results[0].ID != "suit" {
		t.Errorf("cached results must not be mutable by callers, got %q", second.Results[0].ID)
	}

	_, _ = svc.Search(ctx, "wedding suit for men", 3)
	if emb.callCount() == calls {
		t.Error("different limit must miss the cache")
	}

	svc.ClearCache()
	calls = emb.callCount()
	_, _ = svc.Search(ctx, "wedding suit for men", 5)
	if emb.callCount() == calls {
		t.Error("expected cache miss after ClearCache")
	}
}

func TestSearch_InvokesInitializer(t *testing.T) {
	init := &mockInitializer{err: errors.New("warm-up failed")}
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{}, WithInitializer(init))

	if _, err := svc.Search(context.Background(), "shoes", 5); err != nil {
		t.Fatalf("initializer failure must not fail search, got %v", err)
	}
	if init.calls != 1 {
		t.Errorf("expected 1 initializer call, got %d", init.calls)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{})

	_, err := svc.Search(context.Background(), "   ", 5)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	svc := newTestService(t, &mockEmbedder{}, &mockRetriever{})
	if svc.DefaultLimit() != 5 {
		t.Errorf("expected default limit 5, got %d", svc.DefaultLimit())
	}
}
