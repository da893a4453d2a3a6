package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

// Register registers every stylebot collector with the default registry.
// Safe to call more than once; must be called from main before serving.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingTokensTotal,
			EmbeddingErrorsTotal,
			EmbeddingCacheTotal,
			EmbeddingCacheEntries,
			EmbeddingCacheEvictionsTotal,
			SearchVariantFailuresTotal,
			SearchResultCacheTotal,
			SearchDuration,
			SearchCandidates,
			CompletionRequestsTotal,
			CompletionRequestDuration,
			CompletionTokensTotal,
		)
	})
}
