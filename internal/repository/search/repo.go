// Package search is the read side of the book index: it builds FT queries
// for the lexical and vector retrievers and maps raw hits back into domain
// candidates.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bookdex/bookdex/internal/db"
	"github.com/bookdex/bookdex/internal/domain"
	"github.com/bookdex/bookdex/internal/domain/document"
	"github.com/bookdex/bookdex/internal/domain/search/result"
	"github.com/bookdex/bookdex/internal/repository/index"
)

// returnFields are the stored hash fields projected back into candidates.
// The embedding blob and the normalized code are index-only.
var returnFields = []string{
	"id", "title", "authors", "isbn", "description", "publisher",
	"published_date", "edition", "language", "categories", "subjects",
	"page_count", "cover_url",
}

// Repo runs retrieval queries against the book index.
type Repo struct {
	store     db.Searcher
	keyPrefix string
}

// New creates a search repository.
func New(store db.Searcher, keyPrefix string) *Repo {
	return &Repo{store: store, keyPrefix: keyPrefix}
}

// KeywordSearch runs the weighted lexical query and returns candidates
// scored by the engine's native relevance. An empty idFilter searches the
// whole index; a non-empty one restricts matches to those documents.
func (r *Repo) KeywordSearch(ctx context.Context, query string, limit int, idFilter []string) ([]result.Candidate, error) {
	expr := buildKeywordQuery(query)
	if expr == "" {
		return nil, nil
	}
	if filter := buildIDFilter(idFilter); filter != "" {
		expr = fmt.Sprintf("%s (%s)", filter, expr)
	}

	res, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    index.IndexName(r.keyPrefix),
		Query:        expr,
		TopK:         limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, r.mapErr("keyword search", err)
	}

	candidates := make([]result.Candidate, 0, len(res.Entries))
	for _, e := range res.Entries {
		candidates = append(candidates, result.Candidate{
			Doc:   r.docFromEntry(e),
			Score: e.Score,
		})
	}
	return candidates, nil
}

// VectorSearch runs a KNN query and returns candidates scored on the
// similarity scale 2.0 minus cosine distance, so an exact match scores 2.0
// and an opposite vector scores 0.0. Scores never go negative, which the
// downstream fusion normalization relies on.
func (r *Repo) VectorSearch(ctx context.Context, vector []float32, k int, idFilter []string) ([]result.Candidate, error) {
	res, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    index.IndexName(r.keyPrefix),
		Filter:       buildIDFilter(idFilter),
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, r.mapErr("vector search", err)
	}

	candidates := make([]result.Candidate, 0, len(res.Entries))
	for _, e := range res.Entries {
		candidates = append(candidates, result.Candidate{
			Doc:   r.docFromEntry(e),
			Score: 2.0 - e.Score,
		})
	}
	return candidates, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, index.IndexName(r.keyPrefix), "*")
	if err != nil {
		return 0, r.mapErr("count", err)
	}
	return n, nil
}

func (r *Repo) mapErr(op string, err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrSearchUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *Repo) docFromEntry(e db.SearchEntry) document.Document {
	f := e.Fields

	doc := document.Document{
		ID:            f["id"],
		Title:         f["title"],
		Authors:       splitList(f["authors"]),
		ISBN:          f["isbn"],
		Description:   f["description"],
		Publisher:     f["publisher"],
		PublishedDate: f["published_date"],
		Edition:       f["edition"],
		Language:      f["language"],
		Categories:    splitList(f["categories"]),
		Subjects:      splitList(f["subjects"]),
		CoverURL:      f["cover_url"],
	}
	if doc.ID == "" {
		doc.ID = index.IDFromKey(r.keyPrefix, e.Key)
	}
	if pages, err := strconv.Atoi(f["page_count"]); err == nil {
		doc.PageCount = pages
	}
	return doc
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
