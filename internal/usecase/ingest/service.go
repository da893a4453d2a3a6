package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/product"
)

// Defaults applied when Config fields are zero.
const (
	DefaultBatchSize = 10
	DefaultPause     = time.Second
)

// Repository stores embedded products in the vector index.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, items []product.Embedded) error
}

// Config paces ingestion against the embedding provider.
type Config struct {
	BatchSize int
	Pause     time.Duration
}

// Report summarizes an ingestion run.
type Report struct {
	Rows      int
	Skipped   int
	Succeeded int
	Failed    int
}

// Service embeds catalog rows and loads them into the vector index.
type Service struct {
	repo   Repository
	embed  domain.Embedder
	cfg    Config
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates an ingestion service. embed should produce passage embeddings.
func New(repo Repository, embed domain.Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Pause < 0 {
		cfg.Pause = 0
	}
	return &Service{repo: repo, embed: embed, cfg: cfg, logger: logger, sleep: sleepCtx}
}

// Run reads a CSV catalog and ingests every valid row.
func (s *Service) Run(ctx context.Context, r io.Reader) (Report, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Report{}, err
	}
	return s.Ingest(ctx, rows)
}

// Ingest validates rows, ensures the index exists and upserts products batch by batch.
// Rows missing required fields are skipped; embedding or storage failures are counted.
func (s *Service) Ingest(ctx context.Context, rows []product.Row) (Report, error) {
	rep := Report{Rows: len(rows)}

	products := make([]product.Product, 0, len(rows))
	for i, row := range rows {
		p, err := product.New(row)
		if err != nil {
			rep.Skipped++
			s.logger.Debug("Skipping catalog row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	s.logger.Info("Catalog parsed",
		zap.Int("rows", rep.Rows),
		zap.Int("valid", len(products)),
		zap.Int("skipped", rep.Skipped),
	)
	if len(products) == 0 {
		return rep, nil
	}

	if err := s.repo.EnsureIndex(ctx); err != nil {
		return rep, fmt.Errorf("ensure index: %w", err)
	}

	batches := (len(products) + s.cfg.BatchSize - 1) / s.cfg.BatchSize
	for b := 0; b < batches; b++ {
		start := b * s.cfg.BatchSize
		end := min(start+s.cfg.BatchSize, len(products))

		ok, failed := s.ingestBatch(ctx, products[start:end])
		rep.Succeeded += ok
		rep.Failed += failed
		s.logger.Info("Batch ingested",
			zap.Int("batch", b+1),
			zap.Int("batches", batches),
			zap.Int("succeeded", ok),
			zap.Int("failed", failed),
		)

		if b < batches-1 && s.cfg.Pause > 0 {
			if err := s.sleep(ctx, s.cfg.Pause); err != nil {
				return rep, fmt.Errorf("ingest interrupted: %w", err)
			}
		}
	}

	s.logger.Info("Catalog ingestion completed",
		zap.Int("succeeded", rep.Succeeded),
		zap.Int("failed", rep.Failed),
		zap.Int("skipped", rep.Skipped),
	)
	return rep, nil
}

// ingestBatch embeds products concurrently and writes the successful ones in one pipeline.
func (s *Service) ingestBatch(ctx context.Context, batch []product.Product) (int, int) {
	vectors := make([][]float32, len(batch))

	var g errgroup.Group
	for i := range batch {
		g.Go(func() error {
			res, err := s.embed.Embed(ctx, batch[i].Content())
			if err != nil {
				s.logger.Warn("Failed to embed product",
					zap.String("name", batch[i].Name()),
					zap.Error(err),
				)
				return nil
			}
			vectors[i] = res.Embedding
			return nil
		})
	}
	_ = g.Wait()

	items := make([]product.Embedded, 0, len(batch))
	for i, v := range vectors {
		if v != nil {
			items = append(items, product.Embedded{Product: batch[i], Vector: v})
		}
	}
	failed := len(batch) - len(items)
	if len(items) == 0 {
		return 0, failed
	}

	if err := s.repo.Upsert(ctx, items); err != nil {
		s.logger.Warn("Failed to store batch", zap.Int("size", len(items)), zap.Error(err))
		return 0, len(batch)
	}
	return len(items), failed
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
