package query

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/stylebot/internal/domain/facet"
)

func TestExtractor_WeddingSuitForMen(t *testing.T) {
	ex := NewExtractor(NewTranslator())
	a := ex.Extract("wedding suit for men")

	if !reflect.DeepEqual(a.Gender, []facet.Gender{facet.Male}) {
		t.Errorf("Gender = %v", a.Gender)
	}
	if !reflect.DeepEqual(a.Category, []facet.Category{facet.FormalWear}) {
		t.Errorf("Category = %v", a.Category)
	}
	if !reflect.DeepEqual(a.Occasion, []facet.Occasion{facet.Wedding}) {
		t.Errorf("Occasion = %v", a.Occasion)
	}
	if len(a.Color) != 0 {
		t.Errorf("Color = %v, want none", a.Color)
	}
	if !reflect.DeepEqual(a.Keywords, []string{"wedding", "suit", "for", "men"}) {
		t.Errorf("Keywords = %v", a.Keywords)
	}
	if a.TranslatedQuery != "wedding suit for men" {
		t.Errorf("TranslatedQuery = %q", a.TranslatedQuery)
	}
}

func TestExtractor_GermanMatchesEnglishTags(t *testing.T) {
	ex := NewExtractor(NewTranslator())
	en := ex.Extract("wedding suit for men")
	de := ex.Extract("hochzeitsanzug für männer")

	if !reflect.DeepEqual(en.Gender, de.Gender) {
		t.Errorf("gender differs: %v vs %v", en.Gender, de.Gender)
	}
	if !reflect.DeepEqual(en.Category, de.Category) {
		t.Errorf("category differs: %v vs %v", en.Category, de.Category)
	}
	if !reflect.DeepEqual(en.Occasion, de.Occasion) {
		t.Errorf("occasion differs: %v vs %v", en.Occasion, de.Occasion)
	}
}

func TestExtractor_KeepsKeywordCasing(t *testing.T) {
	ex := NewExtractor(NewTranslator())
	a := ex.Extract("Schwarzes Kleid  für Damen")

	if !reflect.DeepEqual(a.Keywords, []string{"Schwarzes", "Kleid", "für", "Damen"}) {
		t.Errorf("Keywords = %v", a.Keywords)
	}
	if !reflect.DeepEqual(a.Color, []facet.Color{facet.Black}) {
		t.Errorf("Color = %v", a.Color)
	}
	if !reflect.DeepEqual(a.Gender, []facet.Gender{facet.Female}) {
		t.Errorf("Gender = %v", a.Gender)
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	queries := []string{"black dress", "Laufschuhe", "business anzug für männer", "x"}
	for _, q := range queries {
		first := NewExtractor(NewTranslator()).Extract(q)
		cached := NewExtractor(NewTranslator())
		cached.Extract(q)
		second := cached.Extract(q)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Extract(%q) not deterministic: %+v vs %+v", q, first, second)
		}
	}
}

func TestKeywords_ShortQuery(t *testing.T) {
	if got := Keywords("a in"); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}
