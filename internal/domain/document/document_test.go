package document

import (
	"strings"
	"testing"

	"github.com/bookdex/bookdex/internal/domain/book"
)

func TestEmbeddingText_FullRecord(t *testing.T) {
	b := book.Book{
		ID:            "b1",
		Title:         "Dune",
		Authors:       []string{"Frank Herbert"},
		ISBN:          "9780441013593",
		Description:   "Desert planet epic.",
		Publisher:     "Ace",
		PublishedDate: "1965",
		Edition:       "Reissue",
		Language:      "en",
		PageCount:     412,
		Categories:    []string{"Fiction", "Classics"},
		Subjects:      []string{"Science Fiction"},
		Excerpts: []book.Excerpt{
			{Text: "Fear is the mind-killer.", Comment: "Litany"},
		},
		PublishPlaces: []string{"New York"},
	}

	got := EmbeddingText(b)
	want := strings.Join([]string{
		"Dune",
		"Frank Herbert",
		"Desert planet epic.",
		"Ace",
		"1965",
		"Reissue",
		"en",
		"Fiction, Classics",
		"Science Fiction",
		"Fear is the mind-killer. Litany",
		"New York",
		"9780441013593",
		"412",
	}, "\n")

	if got != want {
		t.Errorf("EmbeddingText mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmbeddingText_AbsentFieldsContributeNoLine(t *testing.T) {
	b := book.Book{
		Title:   "Dune",
		ISBN:    "9780441013593",
		Authors: nil,
	}

	got := EmbeddingText(b)
	want := "Dune\n9780441013593"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmbeddingText_NumberOfPagesFallback(t *testing.T) {
	b := book.Book{Title: "Dune", NumberOfPages: 500}
	got := EmbeddingText(b)
	if got != "Dune\n500" {
		t.Errorf("got %q, want %q", got, "Dune\n500")
	}
}

func TestEmbeddingText_EmptyRecord(t *testing.T) {
	if got := EmbeddingText(book.Book{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := map[string]string{
		"978-0-441-01359-3": "9780441013593",
		"9780441013593":     "9780441013593",
		"0 441 01359 7":     "0441013597",
		"":                  "",
	}
	for in, want := range cases {
		if got := NormalizeCode(in); got != want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromBook(t *testing.T) {
	b := book.Book{
		ID:        "b1",
		Title:     "Dune",
		Authors:   []string{"Frank Herbert"},
		ISBN:      "9780441013593",
		PageCount: 412,
		CoverURL:  "https://covers.example/b1.jpg",
	}

	doc := FromBook(b)
	if doc.ID != "b1" || doc.Title != "Dune" || doc.ISBN != "9780441013593" {
		t.Errorf("unexpected projection: %+v", doc)
	}
	if doc.PageCount != 412 {
		t.Errorf("expected PageCount=412, got %d", doc.PageCount)
	}
	if doc.Vector != nil {
		t.Error("FromBook must not set a vector")
	}
}
