package sync

import (
	"context"

	"github.com/bookdex/bookdex/internal/domain/book"
	"github.com/bookdex/bookdex/internal/domain/document"
)

// Catalog reads canonical records from the library's source of truth.
type Catalog interface {
	ListBooks(ctx context.Context) ([]book.Book, error)
}

// Indexer is the write side of the search index.
type Indexer interface {
	EnsureIndex(ctx context.Context, force bool) error
	Upsert(ctx context.Context, doc document.Document) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context) error
}

// Embedder vectorizes document text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
