// Package sync rebuilds the search index from the catalog. A run walks
// every record, re-derives its document and embedding, and fully replaces
// the stored version, so reruns converge on the same index state.
package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/bookdex/bookdex/internal/domain/book"
	"github.com/bookdex/bookdex/internal/domain/document"
	"github.com/bookdex/bookdex/internal/logger"
	"github.com/bookdex/bookdex/internal/metrics"
)

// Service runs catalog reindex jobs.
type Service struct {
	catalog Catalog
	indexer Indexer
	embed   Embedder
	workers int
}

// New creates a sync service. workers bounds concurrent embedding calls.
func New(catalog Catalog, indexer Indexer, embed Embedder, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{catalog: catalog, indexer: indexer, embed: embed, workers: workers}
}

// SyncAll reindexes the whole catalog and returns the number of documents
// written. With forceRecreate the index is dropped and rebuilt first, which
// is needed after schema or embedding dimension changes.
//
// Per-record failures are logged and skipped rather than aborting the run:
// an embedding failure still indexes the record for lexical search, an
// upsert failure loses only that record.
func (s *Service) SyncAll(ctx context.Context, forceRecreate bool) (int, error) {
	log := logger.FromContext(ctx)

	if err := s.indexer.EnsureIndex(ctx, forceRecreate); err != nil {
		metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("ensure index: %w", err)
	}

	books, err := s.catalog.ListBooks(ctx)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("list books: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		indexed atomic.Int64
	)
	for _, b := range books {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if s.syncOne(ctx, log, b) {
				indexed.Add(1)
			}
		}
		if err := pool.Submit(task); err != nil {
			// Pool rejected the task (released or overloaded); run inline
			// so no record is silently dropped.
			task()
		}
	}
	wg.Wait()

	pruned := s.prune(ctx, log, books)

	if err := s.indexer.Refresh(ctx); err != nil {
		log.Warn("index refresh after sync failed", zap.Error(err))
	}

	metrics.SyncRunsTotal.WithLabelValues("success").Inc()
	log.Info("catalog sync finished",
		zap.Int("books", len(books)),
		zap.Int64("indexed", indexed.Load()),
		zap.Int("pruned", pruned),
	)
	return int(indexed.Load()), nil
}

// prune deletes indexed documents whose record no longer exists in the
// catalog, so deleted books stop showing up in results after a sync.
func (s *Service) prune(ctx context.Context, log *zap.Logger, books []book.Book) int {
	ids, err := s.indexer.ListIDs(ctx)
	if err != nil {
		log.Warn("listing indexed documents failed, skipping prune", zap.Error(err))
		return 0
	}

	known := make(map[string]struct{}, len(books))
	for _, b := range books {
		known[b.ID] = struct{}{}
	}

	pruned := 0
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		if err := s.indexer.Delete(ctx, id); err != nil {
			log.Warn("deleting stale document failed",
				zap.String("book_id", id),
				zap.Error(err),
			)
			continue
		}
		pruned++
	}
	return pruned
}

// syncOne indexes a single record, reporting whether a document was written.
func (s *Service) syncOne(ctx context.Context, log *zap.Logger, b book.Book) bool {
	doc := document.FromBook(b)

	if text := document.EmbeddingText(b); text != "" {
		vec, err := s.embed.Embed(ctx, text)
		if err != nil {
			// Indexed without a vector: findable lexically, invisible to KNN.
			log.Warn("embedding failed, indexing without vector",
				zap.String("book_id", b.ID),
				zap.Error(err),
			)
		} else {
			doc.Vector = vec
		}
	}

	if err := s.indexer.Upsert(ctx, doc); err != nil {
		metrics.SyncDocumentsTotal.WithLabelValues("skipped").Inc()
		log.Error("upsert failed, skipping record",
			zap.String("book_id", b.ID),
			zap.Error(err),
		)
		return false
	}

	if doc.Vector == nil {
		metrics.SyncDocumentsTotal.WithLabelValues("indexed_no_vector").Inc()
	} else {
		metrics.SyncDocumentsTotal.WithLabelValues("indexed").Inc()
	}
	return true
}
