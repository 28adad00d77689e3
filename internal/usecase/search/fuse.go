package search

import (
	"sort"

	"github.com/bookdex/bookdex/internal/domain/search/result"
)

// Fusion weights. Lexical evidence dominates semantic evidence: a strong
// keyword hit should not be displaced by vector neighbors of middling
// similarity.
const (
	keywordWeight = 0.7
	vectorWeight  = 0.3
)

// fuse merges the two retriever lists into a single ranking.
//
// Each list is max-normalized independently, so its top hit contributes
// exactly its full weight and relative order within the list is preserved.
// The merge is a union: a document from either list always survives into
// the fused set, and a document present in both appears once with
// contributions from both. Ties break on document id for a stable order.
func fuse(keyword, vector []result.Candidate, limit int) []result.Ranked {
	merged := make(map[string]*result.Ranked, len(keyword)+len(vector))
	order := make([]string, 0, len(keyword)+len(vector))

	kMax := maxScore(keyword)
	for _, c := range keyword {
		r := &result.Ranked{Doc: c.Doc, KeywordScore: c.Score / kMax}
		merged[c.Doc.ID] = r
		order = append(order, c.Doc.ID)
	}

	vMax := maxScore(vector)
	for _, c := range vector {
		if r, ok := merged[c.Doc.ID]; ok {
			r.VectorScore = c.Score / vMax
			continue
		}
		merged[c.Doc.ID] = &result.Ranked{Doc: c.Doc, VectorScore: c.Score / vMax}
		order = append(order, c.Doc.ID)
	}

	ranked := make([]result.Ranked, 0, len(order))
	for _, id := range order {
		r := merged[id]
		r.Score = keywordWeight*r.KeywordScore + vectorWeight*r.VectorScore
		ranked = append(ranked, *r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Doc.ID < ranked[j].Doc.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// maxScore returns the list maximum, or 1 so empty and all-zero lists
// divide cleanly.
func maxScore(cands []result.Candidate) float64 {
	top := 0.0
	for _, c := range cands {
		if c.Score > top {
			top = c.Score
		}
	}
	if top == 0 {
		return 1
	}
	return top
}
