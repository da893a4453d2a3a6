package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/metrics"
	chiTransport "github.com/kailas-cloud/stylebot/internal/transport/chi"
	"github.com/kailas-cloud/stylebot/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/stylebot/internal/usecase/health"
	"github.com/kailas-cloud/stylebot/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chat and search HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("Starting stylebot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	metrics.Register()

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	products := newProductRepo(store, cfg)
	if err := products.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure product index: %w", err)
	}

	provider := providerEmbedder(cfg.Embedding, logger)
	embeddings := queryEmbedder(provider, cfg, logger)
	stack := newSearchStack(products, embeddings, cfg, logger)
	defer stack.caches.Cleanup()

	history, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		return err
	}
	// Typed nil pointers must not reach the interface parameters below.
	var historyPinger healthuc.Pinger
	var chatHistory chat.History
	if history != nil {
		defer func() { _ = history.Close() }()
		historyPinger = history
		chatHistory = history
	}

	assistant := chat.New(stack.search, stack.extractor, chatHistory, newCompleter(cfg.Completion, logger), chat.Config{
		SearchResults: cfg.Search.DefaultMaxResults,
		HistoryLimit:  cfg.History.Limit,
	}, logger)
	health := healthuc.New(store, provider, historyPinger)

	if err := stack.caches.Initialize(ctx); err != nil {
		logger.Warn("Cache initialization failed", zap.Error(err))
	}

	server := chiTransport.NewServer(assistant, stack.search, stack.caches, health, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
