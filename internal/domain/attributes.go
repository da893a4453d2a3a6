package domain

import "github.com/kailas-cloud/stylebot/internal/domain/facet"

// QueryAttributes are the facets recognized in a raw user query.
// Values are shared through caches and must be treated as read-only.
type QueryAttributes struct {
	Gender          []facet.Gender   `json:"gender,omitempty"`
	Category        []facet.Category `json:"category,omitempty"`
	Occasion        []facet.Occasion `json:"occasion,omitempty"`
	Color           []facet.Color    `json:"color,omitempty"`
	Keywords        []string         `json:"keywords"`
	TranslatedQuery string           `json:"translatedQuery"`
}

// PrimaryGender returns the first recognized gender, or "" when none.
func (a QueryAttributes) PrimaryGender() facet.Gender {
	if len(a.Gender) == 0 {
		return ""
	}
	return a.Gender[0]
}
