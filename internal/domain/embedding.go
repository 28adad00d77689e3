package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// Implementations return the dense vector for a single non-empty text;
// callers are responsible for guarding against blank input and for
// treating failures as degrade-not-fail.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
