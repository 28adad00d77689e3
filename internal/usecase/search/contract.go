package search

import (
	"context"

	"github.com/bookdex/bookdex/internal/domain/search/result"
)

// Repository defines the retrieval contract for search operations.
// A nil idFilter searches the whole index; a non-empty one restricts
// matches to those document ids.
type Repository interface {
	KeywordSearch(ctx context.Context, query string, limit int, idFilter []string) ([]result.Candidate, error)
	VectorSearch(ctx context.Context, vector []float32, k int, idFilter []string) ([]result.Candidate, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
