package query

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/lexicon"
	"github.com/kailas-cloud/stylebot/internal/memo"
)

// Extractor recognizes facets in a raw query.
type Extractor struct {
	translator *Translator
	cache      *memo.FIFO[string, domain.QueryAttributes]
}

// NewExtractor creates an extractor that fills TranslatedQuery via translator.
func NewExtractor(translator *Translator) *Extractor {
	return &Extractor{translator: translator, cache: memo.NewFIFO[string, domain.QueryAttributes](0)}
}

// Extract returns the facets, keywords and translation of q.
// Results are memoized by the exact input string.
func (e *Extractor) Extract(q string) domain.QueryAttributes {
	return e.cache.GetOrCompute(q, func() domain.QueryAttributes { return e.extract(q) })
}

// ClearCache drops memoized attributes.
func (e *Extractor) ClearCache() { e.cache.Clear() }

func (e *Extractor) extract(q string) domain.QueryAttributes {
	lowered := strings.ToLower(q)

	return domain.QueryAttributes{
		Gender:          lexicon.QueryGender.Match(lowered),
		Category:        lexicon.QueryCategory.Match(lowered),
		Occasion:        lexicon.QueryOccasion.Match(lowered),
		Color:           lexicon.QueryColor.Match(lowered),
		Keywords:        Keywords(q),
		TranslatedQuery: e.translator.Translate(q),
	}
}

// Keywords splits q on whitespace and keeps tokens longer than two characters.
// Casing is preserved.
func Keywords(q string) []string {
	keywords := []string{}
	for _, w := range strings.Fields(q) {
		if utf8.RuneCountInString(w) > 2 {
			keywords = append(keywords, w)
		}
	}
	return keywords
}
