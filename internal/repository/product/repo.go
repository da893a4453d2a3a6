package product

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/stylebot/internal/db"
	"github.com/kailas-cloud/stylebot/internal/domain"
	domprod "github.com/kailas-cloud/stylebot/internal/domain/product"
)

const (
	fieldContent = "content"
	fieldName    = "name"
	fieldURL     = "url"
	fieldGender  = "gender"
	fieldVector  = "vector"
)

// store is the consumer interface for the product index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config describes the product index layout.
type Config struct {
	IndexName      string
	KeyPrefix      string
	Dimensions     int
	M              int
	EFConstruction int
}

// Repo stores product chunks and answers similarity lookups.
type Repo struct {
	store store
	cfg   Config
}

// New creates a product repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// EnsureIndex creates the HNSW cosine index. An existing index is left untouched.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := db.NewIndex(r.cfg.IndexName).
		Prefix(r.cfg.KeyPrefix).
		Text(fieldName).
		Tag(fieldGender).
		HNSW(fieldVector, r.cfg.Dimensions, db.DistanceCosine, r.cfg.M, r.cfg.EFConstruction).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.cfg.IndexName, err)
	}
	return nil
}

// IndexExists reports whether the product index has been created.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.cfg.IndexName)
	if err != nil {
		return false, fmt.Errorf("probe index %s: %w", r.cfg.IndexName, err)
	}
	return ok, nil
}

// Reset drops the index together with every stored product. A missing index is not an error.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.cfg.IndexName, true); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.cfg.IndexName, err)
	}
	return nil
}

// Upsert writes a batch of embedded products in a single pipeline.
func (r *Repo) Upsert(ctx context.Context, items []domprod.Embedded) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, 0, len(items))
	for _, it := range items {
		if len(it.Vector) != r.cfg.Dimensions {
			return fmt.Errorf("product %s: vector has %d dimensions, index expects %d",
				it.Product.ID(), len(it.Vector), r.cfg.Dimensions)
		}
		batch = append(batch, db.HashSetItem{
			Key: r.key(it.Product.ID()),
			Fields: map[string]string{
				fieldContent: it.Product.Content(),
				fieldName:    it.Product.Name(),
				fieldURL:     it.Product.URL(),
				fieldGender:  it.Product.Gender(),
				fieldVector:  db.EncodeVector(it.Vector),
			},
		})
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("upsert %d products: %w", len(items), err)
	}
	return nil
}

// Similar returns up to limit chunks whose cosine similarity to vector is at least threshold,
// most similar first. Zero rows is not an error.
func (r *Repo) Similar(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.cfg.IndexName,
		VectorField:  fieldVector,
		Vector:       vector,
		K:            limit,
		ReturnFields: []string{fieldContent},
	})
	if err != nil {
		return nil, fmt.Errorf("similar products: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	out := make([]domain.Candidate, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		if e.Score < threshold {
			continue
		}
		out = append(out, domain.Candidate{
			ID:         strings.TrimPrefix(e.Key, r.cfg.KeyPrefix),
			Content:    e.Fields[fieldContent],
			Similarity: e.Score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) key(id string) string {
	return r.cfg.KeyPrefix + id
}
