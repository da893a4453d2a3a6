package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/config"
	dbRedis "github.com/kailas-cloud/stylebot/internal/db/redis"
	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/metrics"
	"github.com/kailas-cloud/stylebot/internal/repository/embcache"
	historyrepo "github.com/kailas-cloud/stylebot/internal/repository/history"
	productrepo "github.com/kailas-cloud/stylebot/internal/repository/product"
	"github.com/kailas-cloud/stylebot/internal/transport/embedapi"
	openaiT "github.com/kailas-cloud/stylebot/internal/transport/openai"
	"github.com/kailas-cloud/stylebot/internal/usecase/cachemgr"
	embeddinguc "github.com/kailas-cloud/stylebot/internal/usecase/embedding"
	"github.com/kailas-cloud/stylebot/internal/usecase/query"
	searchuc "github.com/kailas-cloud/stylebot/internal/usecase/search"
)

// openStore connects to Redis or Valkey. Both speak the same search module protocol.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to vector store",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

func newProductRepo(store *dbRedis.Store, cfg config.Config) *productrepo.Repo {
	return productrepo.New(store, productrepo.Config{
		IndexName:      cfg.Database.IndexName,
		KeyPrefix:      cfg.Database.KeyPrefix,
		Dimensions:     cfg.Embedding.Dimensions,
		M:              cfg.Database.HNSWM,
		EFConstruction: cfg.Database.HNSWEFConstruct,
	})
}

// providerEmbedder is the base embedder wrapped in metrics and response validation.
func providerEmbedder(cfg config.EmbeddingConfig, logger *zap.Logger) *embeddinguc.InstrumentedEmbedder {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	var base domain.Embedder
	switch cfg.Provider {
	case config.ProviderHTTP:
		base = embedapi.New(embedapi.Config{
			URL:     cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: timeout,
		})
	default:
		base = openaiT.NewEmbedder(&openaiT.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		})
	}
	return embeddinguc.NewInstrumentedEmbedder(base, cfg.Provider, cfg.Model, cfg.Dimensions, logger)
}

// queryEmbedder assembles provider -> instrumented -> instruction -> cache.
// The cache is outermost so keys are the raw user queries.
func queryEmbedder(
	provider domain.Embedder, cfg config.Config, logger *zap.Logger,
) *embcache.CachedEmbedder {
	instructed := domain.NewInstructionEmbedder(provider, cfg.Embedding.QueryInstruction)
	return embcache.New(instructed, embcache.Config{
		TTL:               cfg.Cache.EmbeddingTTL,
		MaxEntries:        cfg.Cache.EmbeddingMaxEntries,
		WarmUpConcurrency: cfg.Cache.WarmUpConcurrency,
	}, embcache.Metrics{
		Lookups:   metrics.EmbeddingCacheTotal,
		Evictions: metrics.EmbeddingCacheEvictionsTotal,
		Entries:   metrics.EmbeddingCacheEntries,
	}, logger)
}

// searchStack is the query-side pipeline shared by serve and warmup.
type searchStack struct {
	extractor *query.Extractor
	search    *searchuc.Service
	caches    *cachemgr.Manager
}

func newSearchStack(
	repo *productrepo.Repo, embeddings *embcache.CachedEmbedder, cfg config.Config, logger *zap.Logger,
) *searchStack {
	translator := query.NewTranslator()
	extractor := query.NewExtractor(translator)
	expander := query.NewExpander(translator)

	caches := cachemgr.New(embeddings, cachemgr.Config{
		MaintenanceInterval: cfg.Cache.MaintenanceInterval,
		WarmUpQueries:       cfg.Cache.WarmUpQueries,
		SkipWarmUp:          !cfg.Cache.WarmUpOnStart,
	}, logger)

	svc := searchuc.New(embeddings, repo, extractor, expander, searchuc.Config{
		SimilarityThreshold:  cfg.Search.SimilarityThreshold,
		CandidatesPerVariant: cfg.Search.CandidatesPerVariant,
		DefaultMaxResults:    cfg.Search.DefaultMaxResults,
		ResultCacheSize:      cfg.Search.ResultCacheSize,
		Weights:              weights(cfg.Search.Weights),
	}, logger, searchuc.WithInitializer(caches))

	caches.Track(translator, extractor, expander, svc)
	return &searchStack{extractor: extractor, search: svc, caches: caches}
}

// weights overlays configured non-zero weights on the built-in ones.
func weights(c config.WeightsConfig) searchuc.Weights {
	w := searchuc.DefaultWeights()
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&w.GenderMatch, c.GenderMatch)
	set(&w.CategoryMatch, c.CategoryMatch)
	set(&w.GenderMismatch, c.GenderMismatch)
	set(&w.OriginalQuery, c.OriginalQuery)
	set(&w.KeywordMatch, c.KeywordMatch)
	set(&w.LongContent, c.LongContent)
	if c.LongContentRunes > 0 {
		w.LongContentRunes = c.LongContentRunes
	}
	return w
}

// openHistory returns nil when history is disabled.
func openHistory(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (*historyrepo.Repo, error) {
	if cfg.Driver == "" {
		logger.Info("Chat history disabled")
		return nil, nil
	}
	repo, err := historyrepo.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open chat history: %w", err)
	}
	logger.Info("Connected to chat history", zap.String("driver", cfg.Driver))
	return repo, nil
}

func newCompleter(cfg config.CompletionConfig, logger *zap.Logger) *openaiT.Completer {
	return openaiT.NewCompleter(&openaiT.CompletionConfig{
		Config: openaiT.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}, logger)
}
