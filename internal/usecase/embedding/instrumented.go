package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/metrics"
)

// Error types reported in stylebot_embedding_errors_total.
const (
	errTypeTimeout   = "timeout"
	errTypeUpstream  = "upstream"
	errTypeTransport = "transport"
	errTypeInvalid   = "invalid_response"
)

// InstrumentedEmbedder wraps an Embedder with logging, metrics and response validation.
// It is provider agnostic: the same decorator serves the OpenAI and plain HTTP clients.
type InstrumentedEmbedder struct {
	inner      domain.Embedder
	provider   string
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewInstrumentedEmbedder wraps an embedder. dimensions > 0 enforces the vector length.
func NewInstrumentedEmbedder(
	inner domain.Embedder, provider, model string, dimensions int, logger *zap.Logger,
) *InstrumentedEmbedder {
	return &InstrumentedEmbedder{
		inner:      inner,
		provider:   provider,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Embed delegates to the inner embedder and records the outcome.
// An empty vector or a dimension mismatch is reported as an EmbeddingServiceError.
func (p *InstrumentedEmbedder) Embed(
	ctx context.Context, text string,
) (domain.EmbeddingResult, error) {
	start := time.Now()

	result, err := p.inner.Embed(ctx, text)
	if err == nil {
		err = p.validate(result)
	}

	duration := time.Since(start)
	metrics.EmbeddingRequestDuration.WithLabelValues(p.provider, p.model).Observe(duration.Seconds())

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(p.provider, p.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(p.provider, p.model, classify(err)).Inc()
		p.logger.Error("Embedding request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(p.provider, p.model, "success").Inc()
	if result.PromptTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(p.provider, p.model, "prompt").Add(float64(result.PromptTokens))
	}
	if result.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(p.provider, p.model, "total").Add(float64(result.TotalTokens))
	}

	p.logger.Debug("Embedding request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (p *InstrumentedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (p *InstrumentedEmbedder) validate(r domain.EmbeddingResult) error {
	if len(r.Embedding) == 0 {
		return domain.NewEmbeddingServiceError(0, "response contains no embedding")
	}
	if p.dimensions > 0 && len(r.Embedding) != p.dimensions {
		return domain.NewEmbeddingServiceError(0,
			fmt.Sprintf("expected %d dimensions, got %d", p.dimensions, len(r.Embedding)))
	}
	return nil
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return errTypeTimeout
	}
	var svcErr *domain.EmbeddingServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Status > 0 {
			return errTypeUpstream
		}
		return errTypeInvalid
	}
	return errTypeTransport
}
