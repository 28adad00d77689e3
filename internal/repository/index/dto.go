package index

import (
	"strconv"
	"strings"

	"github.com/bookdex/bookdex/internal/db"
	"github.com/bookdex/bookdex/internal/domain/document"
)

// buildHashFields flattens a document into the stored hash. Empty fields are
// omitted entirely so they stay out of the index. The embedding field is set
// only when a vector is present; a missing field keeps the document out of
// KNN candidate pools without any zero-vector placeholder.
func buildHashFields(doc document.Document) map[string]string {
	fields := make(map[string]string, 16)

	set := func(name, value string) {
		if value != "" {
			fields[name] = value
		}
	}

	set("id", doc.ID)
	set("title", doc.Title)
	set("authors", strings.Join(doc.Authors, ", "))
	set("isbn", doc.ISBN)
	set("code", document.NormalizeCode(doc.ISBN))
	set("description", doc.Description)
	set("publisher", doc.Publisher)
	set("published_date", doc.PublishedDate)
	set("edition", doc.Edition)
	set("language", doc.Language)
	set("categories", strings.Join(doc.Categories, ", "))
	set("subjects", strings.Join(doc.Subjects, ", "))
	set("cover_url", doc.CoverURL)
	if doc.PageCount > 0 {
		fields["page_count"] = strconv.Itoa(doc.PageCount)
	}
	if doc.Vector != nil {
		fields["embedding"] = db.EncodeVector(doc.Vector)
	}

	return fields
}

// docFromHash rebuilds a document from its stored hash. The embedding blob
// stays behind in the index; reading it back serves no caller.
func docFromHash(fields map[string]string) document.Document {
	doc := document.Document{
		ID:            fields["id"],
		Title:         fields["title"],
		ISBN:          fields["isbn"],
		Description:   fields["description"],
		Publisher:     fields["publisher"],
		PublishedDate: fields["published_date"],
		Edition:       fields["edition"],
		Language:      fields["language"],
		CoverURL:      fields["cover_url"],
	}
	if v := fields["authors"]; v != "" {
		doc.Authors = strings.Split(v, ", ")
	}
	if v := fields["categories"]; v != "" {
		doc.Categories = strings.Split(v, ", ")
	}
	if v := fields["subjects"]; v != "" {
		doc.Subjects = strings.Split(v, ", ")
	}
	if pages, err := strconv.Atoi(fields["page_count"]); err == nil {
		doc.PageCount = pages
	}
	return doc
}
