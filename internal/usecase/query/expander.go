package query

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stylebot/internal/lexicon"
	"github.com/kailas-cloud/stylebot/internal/memo"
)

// Expander rewrites a query into the variants searched in parallel.
type Expander struct {
	translator *Translator
	expansions *memo.FIFO[string, string]
	variants   *memo.FIFO[string, []string]
}

// NewExpander creates an expander.
func NewExpander(translator *Translator) *Expander {
	return &Expander{
		translator: translator,
		expansions: memo.NewFIFO[string, string](0),
		variants:   memo.NewFIFO[string, []string](0),
	}
}

// Expand appends up to two synonyms for every lexicon term found in q.
// Terms are looked up in the lowered input only, so appended synonyms never cascade.
func (e *Expander) Expand(q string) string {
	return e.expansions.GetOrCompute(q, func() string {
		lowered := strings.ToLower(q)
		var b strings.Builder
		b.WriteString(lowered)
		for _, s := range lexicon.FashionSynonyms {
			if !strings.Contains(lowered, s.Term) {
				continue
			}
			n := min(len(s.Synonyms), lexicon.MaxSynonymsPerTerm)
			b.WriteByte(' ')
			b.WriteString(strings.Join(s.Synonyms[:n], " "))
		}
		return b.String()
	})
}

// Variants returns the de-duplicated search variants of q. The first element is q itself.
// The returned slice is shared and must not be modified.
func (e *Expander) Variants(q string) []string {
	return e.variants.GetOrCompute(q, func() []string { return e.buildVariants(q) })
}

// ClearCache drops memoized expansions and variants.
func (e *Expander) ClearCache() {
	e.expansions.Clear()
	e.variants.Clear()
}

func (e *Expander) buildVariants(q string) []string {
	lowered := strings.ToLower(q)
	out := []string{q}

	if translated := e.translator.Translate(q); translated != lowered {
		out = append(out, translated)
	}

	out = append(out, e.Expand(q))

	tokens := strings.Fields(lowered)

	if simplified := simplify(tokens); simplified != "" && simplified != lowered {
		out = append(out, simplified)
	}

	var nouns []string
	for _, tok := range tokens {
		if _, ok := lexicon.FashionNouns[tok]; ok {
			nouns = append(nouns, tok)
		}
	}
	if len(nouns) > 0 {
		out = append(out, strings.Join(nouns, " "))

		var translated []string
		seen := make(map[string]struct{})
		for _, n := range nouns {
			en := e.translator.Translate(n)
			if en == n {
				continue
			}
			if _, dup := seen[en]; dup {
				continue
			}
			seen[en] = struct{}{}
			translated = append(translated, en)
		}
		if len(translated) > 0 {
			out = append(out, strings.Join(translated, " "))
		}
	}

	return dedupe(out)
}

func simplify(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := lexicon.StopWords[tok]; stop {
			continue
		}
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
