// Package document defines the denormalized search projection of a catalog
// record and the mapping from canonical books into it.
package document

import (
	"strconv"
	"strings"

	"github.com/bookdex/bookdex/internal/domain/book"
)

// Document is the search-index projection of a canonical book. It is keyed
// by the same identifier as the source record; upserting it fully replaces
// any previous version.
//
// Vector is nil when embedding generation failed or has not run yet. A nil
// vector keeps the document out of the vector retriever's candidate pool;
// it is never substituted with a zero vector.
type Document struct {
	ID            string
	Title         string
	Authors       []string
	ISBN          string
	Description   string
	Publisher     string
	PublishedDate string
	Edition       string
	Language      string
	Categories    []string
	Subjects      []string
	PageCount     int
	CoverURL      string
	Vector        []float32
}

// FromBook maps a canonical record to its search document. The vector is
// left unset; callers attach it after a successful embedding call.
func FromBook(b book.Book) Document {
	return Document{
		ID:            b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		ISBN:          b.ISBN,
		Description:   b.Description,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Edition:       b.Edition,
		Language:      b.Language,
		Categories:    b.Categories,
		Subjects:      b.Subjects,
		PageCount:     b.Pages(),
		CoverURL:      b.CoverURL,
	}
}

// NormalizeCode strips hyphens and spaces from an ISBN-like code so
// hyphenated and bare forms compare equal.
func NormalizeCode(code string) string {
	var sb strings.Builder
	sb.Grow(len(code))
	for _, r := range code {
		if r == '-' || r == ' ' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// EmbeddingText builds the single string fed to the embedding model.
//
// The line order and the skip-when-empty rule are a stability contract:
// changing either silently shifts every stored embedding relative to fresh
// queries. Lines, in order: title, authors, description, publisher,
// published date, edition, language, categories, subjects, excerpts,
// publish places, ISBN, pages. An entirely empty record yields "".
func EmbeddingText(b book.Book) string {
	var lines []string

	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	add(b.Title)
	add(strings.Join(b.Authors, ", "))
	add(b.Description)
	add(b.Publisher)
	add(b.PublishedDate)
	add(b.Edition)
	add(b.Language)
	add(strings.Join(b.Categories, ", "))
	add(strings.Join(b.Subjects, ", "))
	add(excerptText(b.Excerpts))
	add(strings.Join(b.PublishPlaces, ", "))
	add(b.ISBN)
	if pages := b.Pages(); pages > 0 {
		add(strconv.Itoa(pages))
	}

	return strings.Join(lines, "\n")
}

// excerptText space-joins every excerpt's text and comment.
func excerptText(excerpts []book.Excerpt) string {
	var parts []string
	for _, e := range excerpts {
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
		if e.Comment != "" {
			parts = append(parts, e.Comment)
		}
	}
	return strings.Join(parts, " ")
}
