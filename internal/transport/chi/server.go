package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	logpkg "github.com/kailas-cloud/stylebot/internal/logger"
	healthuc "github.com/kailas-cloud/stylebot/internal/usecase/health"
)

const (
	maxSearchLimit  = 50
	maxPreloadCount = 200
	maxBodyBytes    = 1 << 20
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers of the assistant API.
type Server struct {
	assistant     Assistant
	search        Searcher
	caches        CacheAdmin
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	assistant Assistant,
	search Searcher,
	caches CacheAdmin,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		assistant: assistant,
		search:    search,
		caches:    caches,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProvider),
		sentinelHandler(domain.ErrVectorSearch, http.StatusBadGateway, CodeVectorSearch),
		sentinelHandler(domain.ErrCompletion, http.StatusBadGateway, CodeCompletion),
		sentinelHandler(domain.ErrEmptyAnswer, http.StatusBadGateway, CodeCompletion),
	}
	return s
}

// Chat handles POST /v1/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return
	}

	answer, err := s.assistant.Answer(r.Context(), req.UserID, req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer.Text, Degraded: answer.Degraded})
}

// SearchProducts handles POST /v1/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.runSearch(w, r, req.Query, req.Limit)
}

// SearchProductsQuery handles GET /v1/search?q=&limit=.
func (s *Server) SearchProductsQuery(w http.ResponseWriter, r *http.Request) {
	var query string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &query); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("invalid format for parameter q: %s", err))
		return
	}
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("invalid format for parameter limit: %s", err))
		return
	}
	s.runSearch(w, r, query, limit)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, query string, limit *int) {
	query = strings.TrimSpace(query)
	if query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return
	}
	n := s.search.DefaultLimit()
	if limit != nil {
		if *limit <= 0 || *limit > maxSearchLimit {
			writeError(w, http.StatusBadRequest, CodeValidationFailed,
				fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit))
			return
		}
		n = *limit
	}

	outcome, err := s.search.Search(r.Context(), query, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(query, outcome))
}

// CacheStats handles GET /v1/cache/stats.
func (s *Server) CacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statsToResponse(s.caches.Statistics(), s.caches.HitRate()))
}

// ClearCaches handles POST /v1/cache/clear.
func (s *Server) ClearCaches(w http.ResponseWriter, r *http.Request) {
	s.caches.ClearAllCaches()
	logpkg.FromContext(r.Context()).Info("All caches cleared")
	w.WriteHeader(http.StatusNoContent)
}

// PreloadCache handles POST /v1/cache/preload.
func (s *Server) PreloadCache(w http.ResponseWriter, r *http.Request) {
	var req preloadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Queries) == 0 || len(req.Queries) > maxPreloadCount {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("queries count must be between 1 and %d", maxPreloadCount))
		return
	}

	failed := s.caches.Preload(r.Context(), req.Queries)
	writeJSON(w, http.StatusOK, preloadResponse{Requested: len(req.Queries), Failed: failed})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorSearch,
		domain.ErrCompletion,
		domain.ErrEmptyAnswer,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
