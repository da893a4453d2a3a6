package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/lexicon"
)

// newWarmUpCmd embeds common queries and runs each through search once.
func newWarmUpCmd(a *app) *cobra.Command {
	var queries []string

	cmd := &cobra.Command{
		Use:   "warmup",
		Short: "Run common queries through the search pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger := a.cfg, a.logger

			store, err := openStore(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			products := newProductRepo(store, cfg)
			exists, err := products.IndexExists(ctx)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("index %s does not exist, run ingest first", cfg.Database.IndexName)
			}

			provider := providerEmbedder(cfg.Embedding, logger)
			stack := newSearchStack(products, queryEmbedder(provider, cfg, logger), cfg, logger)
			defer stack.caches.Cleanup()

			if len(queries) == 0 {
				queries = cfg.Cache.WarmUpQueries
			}
			if len(queries) == 0 {
				queries = lexicon.CommonQueries
			}

			failed := stack.caches.Preload(ctx, queries)
			for _, q := range queries {
				outcome, err := stack.search.Search(ctx, q, 0)
				if err != nil {
					logger.Warn("Warm-up search failed", zap.String("query", q), zap.Error(err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s results=%d failed_variants=%d\n", q, len(outcome.Results), outcome.FailedVariants)
			}

			stats := stack.caches.Statistics()
			fmt.Fprintf(cmd.OutOrStdout(), "embeddings cached=%d failed=%d hit_rate=%.2f\n",
				stats.Embedding.Valid, failed, stack.caches.HitRate())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&queries, "query", nil, "query to warm (repeatable; default: cache.warmup_queries or built-in list)")
	return cmd
}
