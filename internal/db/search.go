package db

// KNNQuery is the input for vector similarity search.
// Filter is an optional FT pre-filter expression; empty means all documents.
type KNNQuery struct {
	IndexName    string
	VectorField  string
	Filter       string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit. Score is cosine similarity clamped to [0, 1].
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
