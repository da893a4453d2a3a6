package chat

import (
	"context"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/chat"
	"github.com/kailas-cloud/stylebot/internal/usecase/search"
)

// Searcher finds ranked product context for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (search.Outcome, error)
}

// AttributeExtractor derives facet tags from a raw query.
type AttributeExtractor interface {
	Extract(q string) domain.QueryAttributes
}

// History persists chat turns.
type History interface {
	SaveTurn(ctx context.Context, m chat.Message) error
	Recent(ctx context.Context, userID string, limit int) ([]chat.Message, error)
}
