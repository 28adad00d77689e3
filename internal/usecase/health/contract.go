package health

import "context"

// DBPinger checks index-engine availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogPinger checks catalog database availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexReadier reports whether the search index exists.
type IndexReadier interface {
	Ready(ctx context.Context) (bool, error)
}
