// Package search implements hybrid retrieval: a lexical leg and a vector
// leg run in parallel and their rankings are fused into one result list.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bookdex/bookdex/internal/domain"
	"github.com/bookdex/bookdex/internal/domain/search/result"
	"github.com/bookdex/bookdex/internal/logger"
)

// Service handles book search requests.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Search runs a hybrid search over the whole index.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]result.Ranked, error) {
	return s.search(ctx, query, limit, nil)
}

// SearchWithin runs a hybrid search restricted to the given document ids.
// Results never include documents outside ids.
func (s *Service) SearchWithin(ctx context.Context, query string, limit int, ids []string) ([]result.Ranked, error) {
	return s.search(ctx, query, limit, ids)
}

func (s *Service) search(ctx context.Context, query string, limit int, ids []string) ([]result.Ranked, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	vector, err := s.embed.Embed(ctx, query)
	if err != nil {
		// The lexical leg alone still gives useful results; losing the
		// embedding provider must not take search down with it.
		logger.FromContext(ctx).Warn("embedding failed, falling back to keyword-only search",
			zap.Error(err))
		return s.keywordOnly(ctx, query, limit, ids)
	}

	var (
		wg      sync.WaitGroup
		keyword []result.Candidate
		vecHits []result.Candidate
		kErr    error
		vErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		keyword, kErr = s.repo.KeywordSearch(ctx, query, limit, ids)
	}()
	go func() {
		defer wg.Done()
		vecHits, vErr = s.repo.VectorSearch(ctx, vector, limit, ids)
	}()
	wg.Wait()

	if kErr != nil {
		return nil, fmt.Errorf("keyword search: %w", kErr)
	}
	if vErr != nil {
		return nil, fmt.Errorf("vector search: %w", vErr)
	}

	return fuse(keyword, vecHits, limit), nil
}

// keywordOnly maps raw lexical candidates straight through, unnormalized.
func (s *Service) keywordOnly(ctx context.Context, query string, limit int, ids []string) ([]result.Ranked, error) {
	cands, err := s.repo.KeywordSearch(ctx, query, limit, ids)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	ranked := make([]result.Ranked, 0, len(cands))
	for _, c := range cands {
		ranked = append(ranked, result.Ranked{
			Doc:          c.Doc,
			Score:        c.Score,
			KeywordScore: c.Score,
		})
	}
	return ranked, nil
}
