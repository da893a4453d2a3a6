package chi

import (
	"time"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/usecase/cachemgr"
	searchuc "github.com/kailas-cloud/stylebot/internal/usecase/search"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeNotFound          ErrorCode = "not_found"
	CodeEmbeddingProvider ErrorCode = "embedding_provider_error"
	CodeVectorSearch      ErrorCode = "vector_search_error"
	CodeCompletion        ErrorCode = "completion_error"
	CodeInternal          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type chatRequest struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	Degraded bool   `json:"degraded,omitempty"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

type searchResponse struct {
	Query          string             `json:"query"`
	Results        []domain.Candidate `json:"results"`
	Total          int                `json:"total"`
	Variants       int                `json:"variants"`
	FailedVariants int                `json:"failedVariants"`
	Degraded       bool               `json:"degraded"`
}

type preloadRequest struct {
	Queries []string `json:"queries"`
}

type preloadResponse struct {
	Requested int `json:"requested"`
	Failed    int `json:"failed"`
}

type embeddingCacheStats struct {
	Total      int     `json:"total"`
	Valid      int     `json:"valid"`
	Expired    int     `json:"expired"`
	TTLSeconds float64 `json:"ttlSeconds"`
	MaxEntries int     `json:"maxEntries"`
}

type cacheStatsResponse struct {
	Embedding   embeddingCacheStats `json:"embedding"`
	HitRate     float64             `json:"hitRate"`
	Initialized bool                `json:"initialized"`
	Timestamp   time.Time           `json:"timestamp"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchToResponse(query string, o searchuc.Outcome) searchResponse {
	results := o.Results
	if results == nil {
		results = []domain.Candidate{}
	}
	return searchResponse{
		Query:          query,
		Results:        results,
		Total:          len(results),
		Variants:       o.Variants,
		FailedVariants: o.FailedVariants,
		Degraded:       o.Degraded(),
	}
}

func statsToResponse(s cachemgr.Statistics, hitRate float64) cacheStatsResponse {
	return cacheStatsResponse{
		Embedding: embeddingCacheStats{
			Total:      s.Embedding.Total,
			Valid:      s.Embedding.Valid,
			Expired:    s.Embedding.Expired,
			TTLSeconds: s.Embedding.TTL.Seconds(),
			MaxEntries: s.Embedding.MaxEntries,
		},
		HitRate:     hitRate,
		Initialized: s.Initialized,
		Timestamp:   s.Timestamp.UTC(),
	}
}
