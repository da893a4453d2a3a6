// Package lexicon holds the bilingual (English/German) keyword tables used to
// recognize facets in queries and product content, and the matching rules for them.
package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchMode selects how a keyword is located in text.
type MatchMode int

// Match modes.
const (
	// Substring matches anywhere, so "hochzeit" hits "hochzeitsanzug".
	Substring MatchMode = iota
	// WholeWord requires word boundaries on both sides, so "men" does not hit "women".
	WholeWord
)

// Keyword is a single lower-case term with its match mode.
type Keyword struct {
	Term string
	Mode MatchMode
}

// In reports whether the keyword occurs in lowered text.
func (k Keyword) In(lowered string) bool {
	if k.Mode == WholeWord {
		return ContainsWord(lowered, k.Term)
	}
	return strings.Contains(lowered, k.Term)
}

// Entry maps one tag to the keywords that imply it.
type Entry[T ~string] struct {
	Tag      T
	Keywords []Keyword
}

// Table is an ordered list of entries. Order is significant for First.
type Table[T ~string] []Entry[T]

// Match returns every tag with at least one keyword present in lowered, in table order.
func (t Table[T]) Match(lowered string) []T {
	var tags []T
	for _, e := range t {
		if e.matches(lowered) {
			tags = append(tags, e.Tag)
		}
	}
	return tags
}

// First returns the first tag in table order with a keyword present in lowered.
func (t Table[T]) First(lowered string) (T, bool) {
	for _, e := range t {
		if e.matches(lowered) {
			return e.Tag, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether tag's keywords occur in lowered.
func (t Table[T]) Has(lowered string, tag T) bool {
	for _, e := range t {
		if e.Tag == tag && e.matches(lowered) {
			return true
		}
	}
	return false
}

func (e Entry[T]) matches(lowered string) bool {
	for _, k := range e.Keywords {
		if k.In(lowered) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether word occurs in s delimited by non-word characters.
// Letters, digits and underscore of any script are word characters.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; offset <= len(s)-len(word); {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

// Words splits s into maximal runs of word characters.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !IsWordRune(r) })
}

// IsWordRune reports whether r is part of a word.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !IsWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !IsWordRune(r)
}

func substr(terms ...string) []Keyword {
	out := make([]Keyword, len(terms))
	for i, t := range terms {
		out[i] = Keyword{Term: t, Mode: Substring}
	}
	return out
}

func words(terms ...string) []Keyword {
	out := make([]Keyword, len(terms))
	for i, t := range terms {
		out[i] = Keyword{Term: t, Mode: WholeWord}
	}
	return out
}

func join(groups ...[]Keyword) []Keyword {
	var out []Keyword
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
