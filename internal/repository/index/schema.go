package index

import (
	"strings"

	"github.com/bookdex/bookdex/internal/db"
)

// Key-space layout under the configured prefix: one hash per book plus a
// single FT index over them.
const (
	docSegment   = "books:"
	indexSegment = "books:idx"
)

// IndexName returns the FT index name for a key prefix.
func IndexName(keyPrefix string) string {
	return keyPrefix + indexSegment
}

// DocKey returns the hash key for a document id.
func DocKey(keyPrefix, id string) string {
	return keyPrefix + docSegment + id
}

// IDFromKey recovers the document id from a hash key. Keys outside the
// document key space are returned unchanged.
func IDFromKey(keyPrefix, key string) string {
	return strings.TrimPrefix(key, keyPrefix+docSegment)
}

// buildIndexDefinition describes the book search index. Lexical fields are
// unstemmed so phrase and prefix clauses match literally; per-clause weights
// are applied at query time rather than baked into the schema.
func buildIndexDefinition(cfg Config) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        IndexName(cfg.KeyPrefix),
		StorageType: db.StorageHash,
		Prefixes:    []string{cfg.KeyPrefix + docSegment},
		Fields: []db.IndexField{
			{Name: "id", Type: db.IndexFieldTag},
			{Name: "code", Type: db.IndexFieldTag},
			{Name: "title", Type: db.IndexFieldText, NoStem: true},
			{Name: "authors", Type: db.IndexFieldText, NoStem: true},
			{Name: "description", Type: db.IndexFieldText},
			{Name: "subjects", Type: db.IndexFieldText},
			{Name: "categories", Type: db.IndexFieldText},
			{Name: "page_count", Type: db.IndexFieldNumeric},
			{
				Name:              "embedding",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         cfg.VectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           cfg.HNSWM,
				VectorEFConstruct: cfg.HNSWEFConstruct,
			},
		},
	}
}
