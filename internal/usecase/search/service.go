package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/facet"
	"github.com/kailas-cloud/stylebot/internal/memo"
	"github.com/kailas-cloud/stylebot/internal/metrics"
)

// Defaults applied when Config fields are zero.
const (
	DefaultSimilarityThreshold  = 0.7
	DefaultCandidatesPerVariant = 8
	DefaultMaxResults           = 5
	DefaultResultCacheSize      = 100
)

// Config tunes retrieval and ranking.
type Config struct {
	SimilarityThreshold  float64
	CandidatesPerVariant int
	DefaultMaxResults    int
	ResultCacheSize      int
	Weights              Weights
}

func (c *Config) applyDefaults() {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.CandidatesPerVariant <= 0 {
		c.CandidatesPerVariant = DefaultCandidatesPerVariant
	}
	if c.DefaultMaxResults <= 0 {
		c.DefaultMaxResults = DefaultMaxResults
	}
	if c.ResultCacheSize <= 0 {
		c.ResultCacheSize = DefaultResultCacheSize
	}
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
}

// Outcome is a ranked result list plus how many variants contributed to it.
type Outcome struct {
	Results        []domain.Candidate
	Variants       int
	FailedVariants int
}

// Degraded reports whether any variant lookup failed.
func (o Outcome) Degraded() bool { return o.FailedVariants > 0 }

// Option configures a Service.
type Option func(*Service)

// WithInitializer runs init before the first search.
func WithInitializer(init Initializer) Option {
	return func(s *Service) { s.init = init }
}

// WithLabeler overrides the content labeler.
func WithLabeler(l *Labeler) Option {
	return func(s *Service) { s.labeler = l }
}

// Service runs multi-variant retrieval and re-ranks the merged candidates.
type Service struct {
	embed     domain.Embedder
	retriever Retriever
	extractor AttributeExtractor
	expander  VariantExpander
	labeler   *Labeler
	scorer    Scorer
	init      Initializer
	cfg       Config
	results   *memo.FIFO[string, Outcome]
	logger    *zap.Logger
}

// New creates a search service.
func New(
	embed domain.Embedder, retriever Retriever,
	extractor AttributeExtractor, expander VariantExpander,
	cfg Config, logger *zap.Logger, opts ...Option,
) *Service {
	cfg.applyDefaults()
	s := &Service{
		embed:     embed,
		retriever: retriever,
		extractor: extractor,
		expander:  expander,
		scorer:    NewScorer(cfg.Weights),
		cfg:       cfg,
		results:   memo.NewFIFO[string, Outcome](cfg.ResultCacheSize),
		logger:    logger,
	}
	for _, o := range opts {
		o(s)
	}
	if s.labeler == nil {
		s.labeler = NewLabeler(DefaultLabelCacheSize)
	}
	return s
}

// DefaultLimit is the result count used when the caller passes none.
func (s *Service) DefaultLimit() int { return s.cfg.DefaultMaxResults }

// Search returns up to maxResults ranked candidates for query.
// Failed variants are skipped; when all fail the outcome is empty and not cached.
func (s *Service) Search(ctx context.Context, query string, maxResults int) (Outcome, error) {
	if strings.TrimSpace(query) == "" {
		return Outcome{}, fmt.Errorf("%w: query is empty", domain.ErrInvalidQuery)
	}
	if maxResults <= 0 {
		maxResults = s.cfg.DefaultMaxResults
	}

	if s.init != nil {
		if err := s.init.Initialize(ctx); err != nil {
			s.logger.Warn("Cache initialization failed", zap.Error(err))
		}
	}

	key := fmt.Sprintf("%s_%d", query, maxResults)
	if cached, ok := s.results.Get(key); ok {
		metrics.SearchResultCacheTotal.WithLabelValues("hit").Inc()
		return cached.clone(), nil
	}
	metrics.SearchResultCacheTotal.WithLabelValues("miss").Inc()

	start := time.Now()
	attrs := s.extractor.Extract(query)
	variants := s.expander.Variants(query)

	perVariant, failed := s.fanOut(ctx, variants)

	unique := dedupe(perVariant)
	metrics.SearchCandidates.Observe(float64(len(unique)))

	ranked := s.rank(filterGender(unique, attrs.Gender), attrs, query)
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	out := Outcome{Results: ranked, Variants: len(variants), FailedVariants: failed}
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("Enhanced search completed",
		zap.String("query", query),
		zap.Int("variants", out.Variants),
		zap.Int("failed_variants", out.FailedVariants),
		zap.Int("candidates", len(unique)),
		zap.Int("results", len(out.Results)),
	)

	if !out.Degraded() {
		s.results.Put(key, out)
	}
	return out.clone(), nil
}

// ClearCache drops cached search results and content labels.
func (s *Service) ClearCache() {
	s.results.Clear()
	s.labeler.ClearCache()
}

// fanOut searches every variant concurrently and returns the candidates in variant order.
func (s *Service) fanOut(ctx context.Context, variants []string) ([][]domain.Candidate, int) {
	slots := make([][]domain.Candidate, len(variants))
	errs := make([]error, len(variants))

	var g errgroup.Group
	for i, v := range variants {
		g.Go(func() error {
			slots[i], errs[i] = s.searchVariant(ctx, v)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		metrics.SearchVariantFailuresTotal.Inc()
		s.logger.Warn("Query variant failed",
			zap.String("variant", variants[i]),
			zap.Error(err),
		)
	}
	return slots, failed
}

func (s *Service) searchVariant(ctx context.Context, variant string) ([]domain.Candidate, error) {
	emb, err := s.embed.Embed(ctx, variant)
	if err != nil {
		return nil, &domain.VectorSearchError{Query: variant, Err: err}
	}
	found, err := s.retriever.Similar(ctx, emb.Embedding, s.cfg.SimilarityThreshold, s.cfg.CandidatesPerVariant)
	if err != nil {
		return nil, &domain.VectorSearchError{Query: variant, Err: err}
	}
	for i := range found {
		lbl := s.labeler.Label(found[i].Content)
		found[i].SourceQuery = variant
		found[i].Label = &lbl
	}
	return found, nil
}

func (s *Service) rank(cands []domain.Candidate, attrs domain.QueryAttributes, original string) []domain.Candidate {
	for i := range cands {
		cands[i].FinalScore = s.scorer.Score(cands[i], attrs, original)
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].FinalScore > cands[j].FinalScore })
	return cands
}

// dedupe flattens per-variant candidates keeping the first occurrence of each key.
func dedupe(perVariant [][]domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{})
	var out []domain.Candidate
	for _, cands := range perVariant {
		for _, c := range cands {
			k := c.DedupeKey()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// filterGender drops candidates labeled with the gender opposite to the query's.
func filterGender(cands []domain.Candidate, query []facet.Gender) []domain.Candidate {
	if len(query) == 0 {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		if c.Label != nil && facet.OpposedBy(query, c.Label.Gender) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (o Outcome) clone() Outcome {
	if o.Results != nil {
		o.Results = append([]domain.Candidate(nil), o.Results...)
	}
	return o
}
