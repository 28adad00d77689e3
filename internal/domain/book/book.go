// Package book holds the canonical catalog record as the search core sees
// it: a read-only projection of the library's source of truth.
package book

import (
	"encoding/json"
	"fmt"
)

// Book is a canonical catalog record. The search core never mutates it;
// the CRUD side of the library owns its lifecycle.
type Book struct {
	ID            string
	Title         string
	Authors       []string
	ISBN          string
	Description   string
	Publisher     string
	PublishedDate string
	Edition       string
	Language      string
	PageCount     int
	NumberOfPages int
	Categories    []string
	Subjects      []string
	Excerpts      []Excerpt
	PublishPlaces []string
	CoverURL      string
}

// Excerpt is a quoted passage attached to a record.
type Excerpt struct {
	Text    string
	Comment string
}

// Pages returns the page count, preferring PageCount over NumberOfPages.
func (b *Book) Pages() int {
	if b.PageCount > 0 {
		return b.PageCount
	}
	return b.NumberOfPages
}

// Catalog feeds encode author-like and subject-like list elements in two
// legal shapes: a plain string, or an object carrying a display name.
// DecodeNames normalizes both to display strings. Elements of any other
// shape are rejected rather than silently dropped.
func DecodeNames(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode name list: %w", err)
	}

	names := make([]string, 0, len(items))
	for i, item := range items {
		name, err := decodeName(item)
		if err != nil {
			return nil, fmt.Errorf("decode name [%d]: %w", i, err)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func decodeName(item json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s, nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return "", fmt.Errorf("neither string nor named object: %w", err)
	}
	return obj.Name, nil
}

// DecodeExcerpts normalizes excerpt-like elements: a plain string becomes
// an Excerpt with only Text set; objects may carry text and comment.
func DecodeExcerpts(data []byte) ([]Excerpt, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode excerpt list: %w", err)
	}

	excerpts := make([]Excerpt, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				excerpts = append(excerpts, Excerpt{Text: s})
			}
			continue
		}

		var obj struct {
			Text    string `json:"text"`
			Comment string `json:"comment"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("decode excerpt [%d]: %w", i, err)
		}
		if obj.Text != "" || obj.Comment != "" {
			excerpts = append(excerpts, Excerpt{Text: obj.Text, Comment: obj.Comment})
		}
	}
	return excerpts, nil
}
