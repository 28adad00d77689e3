// Package result defines the transient value types flowing between the
// retrievers and the fusion step.
package result

import "github.com/bookdex/bookdex/internal/domain/document"

// Candidate is a single retriever hit with that retriever's native score.
// Keyword scores are unbounded lexical relevance; vector scores live in
// [0,2] (cosine similarity + 1). The two scales are not comparable until
// fusion normalizes them.
type Candidate struct {
	Doc   document.Document
	Score float64
}

// Ranked is a fused search hit, sorted descending by Score.
// KeywordScore and VectorScore carry the per-list normalized scores that
// produced the fused value; a document missing from one list has 0 there.
type Ranked struct {
	Doc          document.Document
	Score        float64
	KeywordScore float64
	VectorScore  float64
}
