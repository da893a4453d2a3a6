package search

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/facet"
)

// Weights are the ranking adjustments added to a candidate's similarity.
type Weights struct {
	GenderMatch      float64 `yaml:"gender_match"`
	CategoryMatch    float64 `yaml:"category_match"`
	GenderMismatch   float64 `yaml:"gender_mismatch"`
	OriginalQuery    float64 `yaml:"original_query"`
	KeywordMatch     float64 `yaml:"keyword_match"`
	LongContent      float64 `yaml:"long_content"`
	LongContentRunes int     `yaml:"long_content_runes"`
}

// DefaultWeights returns the stock ranking weights.
func DefaultWeights() Weights {
	return Weights{
		GenderMatch:      0.4,
		CategoryMatch:    0.3,
		GenderMismatch:   0.8,
		OriginalQuery:    0.1,
		KeywordMatch:     0.2,
		LongContent:      0.05,
		LongContentRunes: 200,
	}
}

// Scorer computes the final ranking score of a candidate.
type Scorer struct {
	w Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) Scorer {
	return Scorer{w: w}
}

// Score starts from similarity and applies facet, provenance, keyword and length adjustments.
// GenderMismatch is subtracted.
func (s Scorer) Score(c domain.Candidate, attrs domain.QueryAttributes, original string) float64 {
	score := c.Similarity

	if c.Label != nil {
		if facet.Contains(attrs.Gender, c.Label.Gender) {
			score += s.w.GenderMatch
		}
		if c.Label.Category != "" && facet.Contains(attrs.Category, c.Label.Category) {
			score += s.w.CategoryMatch
		}
		if facet.OpposedBy(attrs.Gender, c.Label.Gender) {
			score -= s.w.GenderMismatch
		}
	}

	if c.SourceQuery == original {
		score += s.w.OriginalQuery
	}

	lowered := strings.ToLower(c.Content)
	var words, matched int
	for _, w := range strings.Fields(strings.ToLower(original)) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		words++
		if strings.Contains(lowered, w) {
			matched++
		}
	}
	score += float64(matched) / float64(max(words, 1)) * s.w.KeywordMatch

	if utf8.RuneCountInString(c.Content) > s.w.LongContentRunes {
		score += s.w.LongContent
	}
	return score
}
