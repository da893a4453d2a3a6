package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/metrics"
)

// CompletionConfig holds sampling parameters for chat completions.
type CompletionConfig struct {
	Config
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// Completer generates assistant replies via an OpenAI-compatible /chat/completions API.
type Completer struct {
	client *openai.Client
	cfg    CompletionConfig
	logger *zap.Logger
}

// NewCompleter creates a chat completion client.
func NewCompleter(cfg *CompletionConfig, logger *zap.Logger) *Completer {
	return &Completer{client: newClient(&cfg.Config), cfg: *cfg, logger: logger}
}

// Complete implements domain.Completer. Failures wrap domain.ErrCompletion.
func (c *Completer) Complete(ctx context.Context, messages []domain.PromptMessage) (domain.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    toChatMessages(messages),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
		User:        c.cfg.User,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	metrics.CompletionRequestDuration.WithLabelValues(c.cfg.Model).Observe(duration.Seconds())

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.cfg.Model, "error").Inc()
		status, detail := apiErrorDetail(err)
		c.logger.Error("Completion request failed",
			zap.String("model", c.cfg.Model),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if status == 0 {
			return domain.Completion{}, fmt.Errorf("%w: %w", domain.ErrCompletion, err)
		}
		return domain.Completion{}, fmt.Errorf("%w: status %d: %s", domain.ErrCompletion, status, detail)
	}
	metrics.CompletionRequestsTotal.WithLabelValues(c.cfg.Model, "success").Inc()
	metrics.CompletionTokensTotal.WithLabelValues(c.cfg.Model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.CompletionTokensTotal.WithLabelValues(c.cfg.Model, "completion").Add(float64(resp.Usage.CompletionTokens))

	if len(resp.Choices) == 0 {
		return domain.Completion{}, domain.ErrEmptyAnswer
	}

	c.logger.Debug("Completion request completed",
		zap.String("model", c.cfg.Model),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
	)

	return domain.Completion{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func toChatMessages(in []domain.PromptMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(in))
	for i, m := range in {
		out[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}
