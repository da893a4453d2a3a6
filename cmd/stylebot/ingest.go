package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/metrics"
	"github.com/kailas-cloud/stylebot/internal/usecase/ingest"
)

func newIngestCmd(a *app) *cobra.Command {
	var (
		batchSize int
		recreate  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <catalog.csv>",
		Short: "Embed a product catalog CSV and load it into the vector index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize > 0 {
				a.cfg.Ingest.BatchSize = batchSize
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := a.ingest(ctx, args[0], recreate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rows=%d skipped=%d succeeded=%d failed=%d\n",
				report.Rows, report.Skipped, report.Succeeded, report.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "products per embedding batch (default: ingest.batch_size)")
	cmd.Flags().BoolVar(&recreate, "recreate", false, "drop the index and every stored product before loading")
	return cmd
}

func (a *app) ingest(ctx context.Context, path string, recreate bool) (ingest.Report, error) {
	cfg, logger := a.cfg, a.logger
	metrics.Register()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return ingest.Report{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return ingest.Report{}, err
	}
	defer store.Close()

	products := newProductRepo(store, cfg)
	if recreate {
		if err := products.Reset(ctx); err != nil {
			return ingest.Report{}, err
		}
		logger.Info("Product index dropped", zap.String("index", cfg.Database.IndexName))
	}

	passages := domain.NewInstructionEmbedder(
		providerEmbedder(cfg.Embedding, logger), cfg.Embedding.PassageInstruction,
	)
	svc := ingest.New(products, passages, ingest.Config{
		BatchSize: cfg.Ingest.BatchSize,
		Pause:     cfg.Ingest.Pause,
	}, logger)

	report, err := svc.Run(ctx, f)
	if err != nil {
		return report, fmt.Errorf("ingest %s: %w", path, err)
	}
	logger.Info("Catalog ingested",
		zap.String("path", path),
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
