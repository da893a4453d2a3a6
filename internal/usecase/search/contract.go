package search

import (
	"context"

	"github.com/kailas-cloud/stylebot/internal/domain"
)

// Retriever looks up product chunks near a query vector.
type Retriever interface {
	Similar(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error)
}

// AttributeExtractor derives facet tags from a raw query.
type AttributeExtractor interface {
	Extract(q string) domain.QueryAttributes
}

// VariantExpander produces the query variants searched in parallel.
type VariantExpander interface {
	Variants(q string) []string
}

// Initializer prepares process-wide caches before the first search.
type Initializer interface {
	Initialize(ctx context.Context) error
}
