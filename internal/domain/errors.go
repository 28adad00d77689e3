package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or blank search query.
	ErrEmptyQuery = errors.New("query text is required")
	// ErrBookNotFound signals a missing catalog record or index document.
	ErrBookNotFound = errors.New("book not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchUnavailable signals that the search index is missing or not
	// yet bootstrapped; the caller should retry after a reindex.
	ErrSearchUnavailable = errors.New("search index unavailable")
)
