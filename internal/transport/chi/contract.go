package chi

import (
	"context"

	"github.com/kailas-cloud/stylebot/internal/usecase/cachemgr"
	chatuc "github.com/kailas-cloud/stylebot/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/stylebot/internal/usecase/health"
	searchuc "github.com/kailas-cloud/stylebot/internal/usecase/search"
)

// Assistant answers chat questions.
type Assistant interface {
	Answer(ctx context.Context, userID, query string) (chatuc.Answer, error)
}

// Searcher runs product searches.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (searchuc.Outcome, error)
	DefaultLimit() int
}

// CacheAdmin exposes cache statistics and maintenance.
type CacheAdmin interface {
	Statistics() cachemgr.Statistics
	HitRate() float64
	ClearAllCaches()
	Preload(ctx context.Context, queries []string) int
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
