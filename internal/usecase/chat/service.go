package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/chat"
)

// Defaults applied when Config fields are zero.
const (
	DefaultSearchResults   = 5
	DefaultHistoryLimit    = 4
	DefaultFallbackMessage = "Sorry, I could not find suitable products for your request. " +
		"Please visit asoss.com for a wider selection."
)

// Config tunes the answer pipeline.
type Config struct {
	SearchResults   int
	HistoryLimit    int
	FallbackMessage string
}

// Answer is the assistant reply and the products it was grounded on.
type Answer struct {
	Text     string
	Sources  []domain.Candidate
	Degraded bool
}

// Service answers shopping questions from retrieved product context.
type Service struct {
	search    Searcher
	extractor AttributeExtractor
	history   History
	completer domain.Completer
	cfg       Config
	logger    *zap.Logger
}

// New creates a chat service. history may be nil, which disables persistence.
func New(
	s Searcher, extractor AttributeExtractor, history History,
	completer domain.Completer, cfg Config, logger *zap.Logger,
) *Service {
	if cfg.SearchResults <= 0 {
		cfg.SearchResults = DefaultSearchResults
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = DefaultFallbackMessage
	}
	return &Service{
		search:    s,
		extractor: extractor,
		history:   history,
		completer: completer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Answer searches products, builds a gender-aware prompt with recent history and asks the model.
// History failures are logged; completion failures and empty replies are returned.
func (s *Service) Answer(ctx context.Context, userID, query string) (Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Answer{}, fmt.Errorf("%w: query is empty", domain.ErrInvalidQuery)
	}

	outcome, err := s.search.Search(ctx, query, s.cfg.SearchResults)
	if err != nil {
		return Answer{}, fmt.Errorf("search products: %w", err)
	}

	history := s.recent(ctx, userID)
	productContext := FormatContext(outcome.Results)

	s.save(ctx, chat.Message{UserID: userID, Role: chat.User, Content: query, Context: productContext})

	attrs := s.extractor.Extract(query)
	system := SystemPrompt(attrs.PrimaryGender(), s.cfg.FallbackMessage)

	completion, err := s.completer.Complete(ctx, BuildMessages(system, productContext, query, history))
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	text := strings.TrimSpace(completion.Content)
	if text == "" {
		return Answer{}, domain.ErrEmptyAnswer
	}

	s.save(ctx, chat.Message{UserID: userID, Role: chat.Assistant, Content: text})

	s.logger.Debug("Answer generated",
		zap.String("user_id", userID),
		zap.Int("sources", len(outcome.Results)),
		zap.Int("history", len(history)),
		zap.Bool("degraded", outcome.Degraded()),
	)
	return Answer{Text: text, Sources: outcome.Results, Degraded: outcome.Degraded()}, nil
}

func (s *Service) recent(ctx context.Context, userID string) []chat.Message {
	if s.history == nil || userID == "" {
		return nil
	}
	msgs, err := s.history.Recent(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("Could not load chat history", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return msgs
}

func (s *Service) save(ctx context.Context, m chat.Message) {
	if s.history == nil || m.UserID == "" {
		return
	}
	if err := s.history.SaveTurn(ctx, m); err != nil {
		s.logger.Warn("Could not save chat turn",
			zap.String("user_id", m.UserID),
			zap.String("role", string(m.Role)),
			zap.Error(err),
		)
	}
}
