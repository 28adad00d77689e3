// Package chi exposes the search service over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bookdex/bookdex/internal/domain"
	"github.com/bookdex/bookdex/internal/domain/document"
	"github.com/bookdex/bookdex/internal/domain/search/result"
	"github.com/bookdex/bookdex/internal/logger"
	"github.com/bookdex/bookdex/internal/metrics"
	healthuc "github.com/bookdex/bookdex/internal/usecase/health"
)

// Error response codes.
const (
	codeBadRequest        = "bad_request"
	codeEmptyQuery        = "empty_query"
	codeNotFound          = "book_not_found"
	codeSearchUnavailable = "search_unavailable"
	codeEmbeddingError    = "embedding_provider_error"
	codeInternalError     = "internal_error"
)

// Searcher runs hybrid search requests.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]result.Ranked, error)
	SearchWithin(ctx context.Context, query string, limit int, ids []string) ([]result.Ranked, error)
}

// Syncer runs catalog reindex jobs.
type Syncer interface {
	SyncAll(ctx context.Context, forceRecreate bool) (int, error)
}

// BookReader reads single indexed documents.
type BookReader interface {
	Get(ctx context.Context, id string) (document.Document, error)
}

// StatsReader reports index size.
type StatsReader interface {
	Count(ctx context.Context) (int, error)
}

// Limits bound the result list size per request.
type Limits struct {
	Default int
	Max     int
}

// Server is the HTTP API server.
type Server struct {
	search Searcher
	sync   Syncer
	books  BookReader
	stats  StatsReader
	health *healthuc.Service
	limits Limits
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	sync Syncer,
	books BookReader,
	stats StatsReader,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	return &Server{
		search: search,
		sync:   sync,
		books:  books,
		stats:  stats,
		health: health,
		limits: limits,
		logger: logger,
	}
}

// Router builds the full route tree with middleware. apiKeys enables bearer
// auth when non-empty; health and metrics stay open either way.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chirouter.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.recoverer)
	r.Use(s.withLogger)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/search", s.SearchBooks)
		r.Post("/search/scoped", s.SearchScoped)
		r.Get("/books/{id}", s.GetBook)
		r.Post("/admin/sync", s.SyncCatalog)
		r.Get("/admin/stats", s.IndexStats)
	})

	return r
}

// SearchBooks handles GET /api/v1/search.
func (s *Server) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, err := s.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromRanked(results, limit))
}

// SearchScoped handles POST /api/v1/search/scoped: a hybrid search
// restricted to an explicit id set, for searching within a shelf or a
// reading list.
func (s *Server) SearchScoped(w http.ResponseWriter, r *http.Request) {
	var req scopedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "ids is required")
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.limits.Default
	}
	if limit < 0 || limit > s.limits.Max {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			"limit must be between 1 and "+strconv.Itoa(s.limits.Max))
		return
	}

	results, err := s.search.SearchWithin(r.Context(), req.Query, limit, req.IDs)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromRanked(results, limit))
}

// GetBook handles GET /api/v1/books/{id}: the indexed view of one record.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	doc, err := s.books.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookFromDoc(doc))
}

// IndexStats handles GET /api/v1/admin/stats.
func (s *Server) IndexStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.stats.Count(r.Context())
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Documents: count})
}

// SyncCatalog handles POST /api/v1/admin/sync. The recreate query param
// drops and rebuilds the index before indexing.
func (s *Server) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	recreate := r.URL.Query().Get("recreate") == "true"

	indexed, err := s.sync.SyncAll(r.Context(), recreate)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Indexed: indexed, Recreated: recreate})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) parseLimit(raw string) (int, error) {
	if raw == "" {
		return s.limits.Default, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > s.limits.Max {
		return 0, errors.New("limit must be between 1 and " + strconv.Itoa(s.limits.Max))
	}
	return limit, nil
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, codeEmptyQuery, domain.ErrEmptyQuery.Error())
	case errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrBookNotFound.Error())
	case errors.Is(err, domain.ErrSearchUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeSearchUnavailable, domain.ErrSearchUnavailable.Error())
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, codeEmbeddingError, domain.ErrEmbeddingProviderError.Error())
	default:
		logger.FromContext(ctx).Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// withLogger attaches the request-scoped logger to the context.
func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), log)))
	})
}

// recoverer converts panics into JSON 500s instead of chi's plain text.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
