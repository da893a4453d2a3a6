// Package embedapi talks to a minimal embedding endpoint that accepts
// {"text": "..."} and answers {"embedding": [...]}.
package embedapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/stylebot/internal/domain"
)

const (
	// DefaultTimeout bounds a single embedding request.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4 << 10
)

// Config holds the endpoint settings.
type Config struct {
	URL string
	// HealthURL is probed by HealthCheck. Empty means the embed URL is probed with a GET.
	HealthURL string
	APIKey    string
	Timeout   time.Duration
}

// Client is an embedding provider over the plain text-to-vector HTTP contract.
type Client struct {
	url       string
	healthURL string
	apiKey    string
	http      *http.Client
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// New creates a client. A zero timeout falls back to DefaultTimeout.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	health := cfg.HealthURL
	if health == "" {
		health = cfg.URL
	}
	return &Client{
		url:       cfg.URL,
		healthURL: health,
		apiKey:    cfg.APIKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// Embed implements domain.Embedder. The endpoint reports no token usage.
func (c *Client) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: build request: %w", domain.ErrEmbeddingProviderError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.EmbeddingResult{}, domain.NewEmbeddingServiceError(resp.StatusCode, errorDetail(raw, resp.Status))
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.EmbeddingResult{}, domain.NewEmbeddingServiceError(0, "malformed response: "+err.Error())
	}
	if len(parsed.Embedding) == 0 {
		return domain.EmbeddingResult{}, domain.NewEmbeddingServiceError(0, "response contains no embedding")
	}
	return domain.EmbeddingResult{Embedding: parsed.Embedding}, nil
}

// HealthCheck treats any response below 500 as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("embedding endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("embedding endpoint unhealthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func errorDetail(body []byte, status string) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return status
}
