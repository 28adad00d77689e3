package search

import (
	"fmt"
	"strings"

	"github.com/bookdex/bookdex/internal/domain/document"
)

// Per-clause weights for the lexical retriever. An exact id or catalog code
// match dominates everything else; title signals beat author signals beat
// body text. Tuned against the library's own catalog, change with care.
const (
	weightExact       = 10
	weightTitlePhrase = 5
	weightTitle       = 3
	weightTitlePrefix = 3
	weightAuthors     = 2
	weightBody        = 1
)

// minPrefixLen matches the engine's minimum prefix length; shorter tokens
// get no prefix clause.
const minPrefixLen = 2

// buildKeywordQuery turns a free-text query into a weighted FT disjunction.
// Each clause targets one field group and carries its own weight, so a hit
// on any clause qualifies the document and the best clauses dominate the
// score. Requires DIALECT 2 for the per-clause weight attributes.
func buildKeywordQuery(query string) string {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return ""
	}

	terms := strings.Join(tokens, " ")

	clauses := []string{
		fmt.Sprintf(`(@title:"%s")=>{$weight:%d}`, terms, weightTitlePhrase),
		fmt.Sprintf(`(@title:(%s))=>{$weight:%d}`, terms, weightTitle),
	}

	if prefixed := prefixTerms(tokens); prefixed != "" {
		clauses = append(clauses,
			fmt.Sprintf(`(@title:(%s))=>{$weight:%d}`, prefixed, weightTitlePrefix))
	}

	clauses = append(clauses,
		fmt.Sprintf(`(@authors:(%s))=>{$weight:%d}`, terms, weightAuthors),
		fmt.Sprintf(`(@description:(%s))=>{$weight:%d}`, terms, weightBody),
		fmt.Sprintf(`(@subjects|categories:(%s))=>{$weight:%d}`, terms, weightBody),
	)

	// Exact clauses go first so a direct lookup dominates text relevance.
	// A single-token query may be a document id; codes additionally match
	// on the hyphen-stripped form, so "978-0-441-01359-3" and
	// "9780441013593" find the same record.
	var exact []string
	if len(tokens) == 1 {
		exact = append(exact,
			fmt.Sprintf(`(@id:{%s})=>{$weight:%d}`, tokens[0], weightExact))
	}
	if code := document.NormalizeCode(query); looksLikeCode(code) {
		exact = append(exact,
			fmt.Sprintf(`(@code:{%s})=>{$weight:%d}`, code, weightExact))
	}

	return strings.Join(append(exact, clauses...), " | ")
}

// buildIDFilter builds a TAG pre-filter restricting matches to the given ids.
func buildIDFilter(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	escaped := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		escaped = append(escaped, escapeToken(id))
	}
	if len(escaped) == 0 {
		return ""
	}
	return fmt.Sprintf("@id:{%s}", strings.Join(escaped, "|"))
}

// tokenize splits a query into escaped terms, dropping empties.
func tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := escapeToken(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// prefixTerms appends a wildcard to each token long enough to prefix-match.
func prefixTerms(tokens []string) string {
	prefixed := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) >= minPrefixLen {
			prefixed = append(prefixed, tok+"*")
		}
	}
	return strings.Join(prefixed, " ")
}

// escapeToken backslash-escapes FT query syntax characters within a term.
func escapeToken(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '-', '+',
			'=', '~', '|', '/', '\\', '?':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// looksLikeCode reports whether a normalized query is plausibly an ISBN-like
// code: long enough and made of digits with at most a trailing check X.
func looksLikeCode(code string) bool {
	if len(code) < 8 {
		return false
	}
	for i, r := range code {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == 'X' || r == 'x') && i == len(code)-1 {
			continue
		}
		return false
	}
	return true
}
