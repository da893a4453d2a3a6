package search

import (
	"strings"

	"github.com/kailas-cloud/stylebot/internal/domain/facet"
	"github.com/kailas-cloud/stylebot/internal/lexicon"
	"github.com/kailas-cloud/stylebot/internal/memo"
)

// DefaultLabelCacheSize bounds the content label memo.
const DefaultLabelCacheSize = 500

// Labeler guesses the gender and category of a product chunk from its text.
type Labeler struct {
	cache *memo.FIFO[string, facet.ContentLabel]
}

// NewLabeler creates a labeler remembering up to capacity chunks.
func NewLabeler(capacity int) *Labeler {
	if capacity <= 0 {
		capacity = DefaultLabelCacheSize
	}
	return &Labeler{cache: memo.NewFIFO[string, facet.ContentLabel](capacity)}
}

// Label returns male only when masculine words appear without feminine ones, female symmetrically,
// unisex otherwise. Category is the first hit in priority order, or empty.
func (l *Labeler) Label(text string) facet.ContentLabel {
	return l.cache.GetOrCompute(text, func() facet.ContentLabel { return label(text) })
}

// ClearCache drops remembered labels.
func (l *Labeler) ClearCache() { l.cache.Clear() }

func label(text string) facet.ContentLabel {
	lowered := strings.ToLower(text)
	male := lexicon.ContentGender.Has(lowered, facet.Male)
	female := lexicon.ContentGender.Has(lowered, facet.Female)

	out := facet.ContentLabel{Gender: facet.Unisex}
	switch {
	case male && !female:
		out.Gender = facet.Male
	case female && !male:
		out.Gender = facet.Female
	}
	if c, ok := lexicon.ContentCategory.First(lowered); ok {
		out.Category = c
	}
	return out
}
