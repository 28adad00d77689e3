package db

// KNNQuery is the input for vector similarity search.
// Filter (optional) is a pre-built FT filter expression restricting the
// candidate pool before the KNN scan; empty means match-all.
type KNNQuery struct {
	IndexName    string
	Filter       string
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery is the input for lexical (BM25-scored) text search.
// Query is a complete FT query expression built by the caller.
type TextQuery struct {
	IndexName    string
	Query        string
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
// For KNN queries Score carries the raw cosine distance reported by the
// engine; for text queries it carries the native relevance score.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
