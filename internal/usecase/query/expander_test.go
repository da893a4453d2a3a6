package query

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/stylebot/internal/lexicon"
)

func newTestExpander() *Expander { return NewExpander(NewTranslator()) }

func TestExpander_Expand(t *testing.T) {
	e := newTestExpander()
	got := e.Expand("Wedding Suit for Men")
	want := "wedding suit for men bridal ceremony formal wear business attire"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpander_ExpandNoCascade(t *testing.T) {
	e := newTestExpander()
	// "hochzeit" appends "wedding", which must not pull in wedding's own synonyms.
	got := e.Expand("hochzeit")
	want := "hochzeit wedding bridal"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpander_VariantsEnglish(t *testing.T) {
	e := newTestExpander()
	got := e.Variants("wedding suit for men")
	want := []string{
		"wedding suit for men",
		"wedding suit for men bridal ceremony formal wear business attire",
		"wedding suit men",
		"suit",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants() =\n%q\nwant\n%q", got, want)
	}
}

func TestExpander_VariantsGerman(t *testing.T) {
	e := newTestExpander()
	got := e.Variants("Schwarze Schuhe für die Arbeit")
	want := []string{
		"Schwarze Schuhe für die Arbeit",
		"schwarze shoes for die work",
		"schwarze schuhe für die arbeit shoes footwear black dark work office",
		"schwarze schuhe arbeit",
		"schuhe",
		"shoes",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants() =\n%q\nwant\n%q", got, want)
	}
}

func TestExpander_VariantsDeduplicated(t *testing.T) {
	e := newTestExpander()
	got := e.Variants("shoes")
	want := []string{"shoes", "shoes footwear sneakers"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants() = %q, want %q", got, want)
	}
}

func TestExpander_VariantsProperties(t *testing.T) {
	e := newTestExpander()
	queries := append([]string{"", "  ", "Für"}, lexicon.CommonQueries...)
	for _, q := range queries {
		vs := e.Variants(q)
		if len(vs) == 0 || vs[0] != q {
			t.Errorf("Variants(%q)[0] = %q, want input", q, vs)
			continue
		}
		seen := map[string]bool{}
		for _, v := range vs {
			if seen[v] {
				t.Errorf("Variants(%q) has duplicate %q", q, v)
			}
			seen[v] = true
		}
	}
}

func TestExpander_ClearCache(t *testing.T) {
	e := newTestExpander()
	e.Variants("black dress")
	e.ClearCache()
	if e.variants.Len() != 0 || e.expansions.Len() != 0 {
		t.Error("expected caches to be empty")
	}
}
