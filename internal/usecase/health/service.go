// Package health aggregates per-component checks into one service report.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	catalog   CatalogPinger
	embedding EmbeddingChecker
	index     IndexReadier
}

// New creates a Service. Any dependency may be nil to skip its check.
func New(db DBPinger, catalog CatalogPinger, embedding EmbeddingChecker, index IndexReadier) *Service {
	return &Service{db: db, catalog: catalog, embedding: embedding, index: index}
}

// Check runs health checks against all components. A missing search index
// degrades the report the same way a failing dependency does: searches will
// return 503 until a sync recreates it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		checks["database"] = resultOf(s.db.Ping(ctx))
	}
	if s.catalog != nil {
		checks["catalog"] = resultOf(s.catalog.Ping(ctx))
	}
	if s.embedding != nil {
		checks["embedding"] = resultOf(s.embedding.HealthCheck(ctx))
	}
	if s.index != nil {
		ready, err := s.index.Ready(ctx)
		if err != nil || !ready {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func resultOf(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
