// Package index owns the book search index: its schema, the hash layout of
// stored documents, and the write-side lifecycle (ensure, upsert, delete,
// refresh).
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookdex/bookdex/internal/db"
	"github.com/bookdex/bookdex/internal/domain"
	"github.com/bookdex/bookdex/internal/domain/document"
)

// engine is the slice of the index store the write side needs.
type engine interface {
	db.HashStore
	db.IndexManager
	db.Refresher
}

// Config holds index layout parameters.
type Config struct {
	KeyPrefix       string
	VectorDim       int
	HNSWM           int
	HNSWEFConstruct int
}

// Repo manages the book index and its documents.
type Repo struct {
	store engine
	cfg   Config
}

// New creates an index repository.
func New(store engine, cfg Config) *Repo {
	return &Repo{store: store, cfg: cfg}
}

// EnsureIndex creates the book index if it does not exist. With force set,
// an existing index is dropped and rebuilt, which is required after any
// schema or dimension change. Stored hashes survive a drop; only the index
// structure is rebuilt.
func (r *Repo) EnsureIndex(ctx context.Context, force bool) error {
	name := IndexName(r.cfg.KeyPrefix)

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}

	if exists {
		if !force {
			return nil
		}
		if err := r.store.DropIndex(ctx, name); err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
	}

	if err := r.store.CreateIndex(ctx, buildIndexDefinition(r.cfg)); err != nil {
		// A concurrent EnsureIndex may have won the race.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Upsert fully replaces the stored document. The hash is deleted before the
// write because HSET alone merges fields, which would leave a stale vector
// behind when the new document has none.
func (r *Repo) Upsert(ctx context.Context, doc document.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	key := DocKey(r.cfg.KeyPrefix, doc.ID)

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("clear document %s: %w", doc.ID, err)
	}
	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("store document %s: %w", doc.ID, err)
	}
	return nil
}

// Get reads a stored document back by id. The embedding is not
// reconstructed; the blob only serves KNN queries.
func (r *Repo) Get(ctx context.Context, id string) (document.Document, error) {
	fields, err := r.store.HGetAll(ctx, DocKey(r.cfg.KeyPrefix, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return document.Document{}, fmt.Errorf("document %s: %w", id, domain.ErrBookNotFound)
		}
		return document.Document{}, fmt.Errorf("read document %s: %w", id, err)
	}
	return docFromHash(fields), nil
}

// ListIDs returns the ids of every stored document.
func (r *Repo) ListIDs(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.cfg.KeyPrefix+docSegment+"*")
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, IDFromKey(r.cfg.KeyPrefix, k))
	}
	return ids, nil
}

// Delete removes a document from the index.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, DocKey(r.cfg.KeyPrefix, id)); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// Refresh blocks until prior writes are visible to searches.
func (r *Repo) Refresh(ctx context.Context) error {
	if err := r.store.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	return nil
}

// Ready reports whether the book index exists and can serve searches.
func (r *Repo) Ready(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, IndexName(r.cfg.KeyPrefix))
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	return exists, nil
}
