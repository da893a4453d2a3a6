package query

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stylebot/internal/lexicon"
	"github.com/kailas-cloud/stylebot/internal/memo"
)

// Translator maps German fashion terms to English word by word.
type Translator struct {
	lexicon map[string]string
	cache   *memo.FIFO[string, string]
}

// NewTranslator creates a translator over the built-in German lexicon.
func NewTranslator() *Translator {
	return &Translator{lexicon: lexicon.GermanToEnglish, cache: memo.NewFIFO[string, string](0)}
}

// Translate lower-cases q and replaces every whole word found in the lexicon.
// Each input word is looked up once, so produced English words are never re-translated.
func (t *Translator) Translate(q string) string {
	return t.cache.GetOrCompute(q, func() string { return t.translate(q) })
}

// ClearCache drops memoized translations.
func (t *Translator) ClearCache() { t.cache.Clear() }

func (t *Translator) translate(q string) string {
	lowered := strings.ToLower(q)

	var b strings.Builder
	b.Grow(len(lowered))

	wordStart := -1
	flush := func(end int) {
		if wordStart < 0 {
			return
		}
		w := lowered[wordStart:end]
		if en, ok := t.lexicon[w]; ok {
			b.WriteString(en)
		} else {
			b.WriteString(w)
		}
		wordStart = -1
	}

	for i := 0; i < len(lowered); {
		r, size := utf8.DecodeRuneInString(lowered[i:])
		if lexicon.IsWordRune(r) {
			if wordStart < 0 {
				wordStart = i
			}
		} else {
			flush(i)
			b.WriteString(lowered[i : i+size])
		}
		i += size
	}
	flush(len(lowered))

	return b.String()
}
