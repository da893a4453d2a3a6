package domain

import "github.com/kailas-cloud/stylebot/internal/domain/facet"

// Candidate is a product chunk returned by the vector index and carried through ranking.
type Candidate struct {
	ID          string              `json:"id"`
	Content     string              `json:"content"`
	Similarity  float64             `json:"similarity"`
	SourceQuery string              `json:"sourceQuery,omitempty"`
	Label       *facet.ContentLabel `json:"label,omitempty"`
	FinalScore  float64             `json:"finalScore"`
}

// DedupeKey identifies a candidate across query variants:
// the ID when present, otherwise the first 100 characters of content.
func (c Candidate) DedupeKey() string {
	if c.ID != "" {
		return c.ID
	}
	r := []rune(c.Content)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r)
}
