// Package catalog reads canonical book records out of the library's SQLite
// database. The search service only ever reads from it; the CRUD side of
// the library owns the schema and all writes.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bookdex/bookdex/internal/domain/book"
)

// Store is a read-only view over the library catalog database.
type Store struct {
	db *sql.DB
}

// Open connects to the catalog database at path in read-only mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close() //nolint:wrapcheck // close passthrough
}

// Ping verifies the catalog database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog ping: %w", err)
	}
	return nil
}

const listBooksQuery = `
	SELECT id, title, authors, isbn, description, publisher, published_date,
	       edition, language, page_count, number_of_pages, categories,
	       subjects, excerpts, publish_places, cover_url
	FROM books
	ORDER BY id`

// ListBooks returns every record in the catalog. List-valued columns are
// stored as JSON arrays whose elements may be plain strings or objects;
// both shapes are normalized here.
func (s *Store) ListBooks(ctx context.Context) ([]book.Book, error) {
	rows, err := s.db.QueryContext(ctx, listBooksQuery)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func scanBook(rows *sql.Rows) (book.Book, error) {
	var (
		b book.Book

		title, isbn, description, publisher sql.NullString
		publishedDate, edition, language    sql.NullString
		coverURL                            sql.NullString
		pageCount, numberOfPages            sql.NullInt64
		authors, categories, subjects       sql.NullString
		excerpts, publishPlaces             sql.NullString
	)

	err := rows.Scan(
		&b.ID, &title, &authors, &isbn, &description, &publisher,
		&publishedDate, &edition, &language, &pageCount, &numberOfPages,
		&categories, &subjects, &excerpts, &publishPlaces, &coverURL,
	)
	if err != nil {
		return book.Book{}, fmt.Errorf("scan book: %w", err)
	}

	b.Title = title.String
	b.ISBN = isbn.String
	b.Description = description.String
	b.Publisher = publisher.String
	b.PublishedDate = publishedDate.String
	b.Edition = edition.String
	b.Language = language.String
	b.PageCount = int(pageCount.Int64)
	b.NumberOfPages = int(numberOfPages.Int64)
	b.CoverURL = coverURL.String

	if b.Authors, err = decodeNames(authors); err != nil {
		return book.Book{}, fmt.Errorf("book %s authors: %w", b.ID, err)
	}
	if b.Categories, err = decodeNames(categories); err != nil {
		return book.Book{}, fmt.Errorf("book %s categories: %w", b.ID, err)
	}
	if b.Subjects, err = decodeNames(subjects); err != nil {
		return book.Book{}, fmt.Errorf("book %s subjects: %w", b.ID, err)
	}
	if b.PublishPlaces, err = decodeNames(publishPlaces); err != nil {
		return book.Book{}, fmt.Errorf("book %s publish_places: %w", b.ID, err)
	}
	if excerpts.Valid && excerpts.String != "" {
		if b.Excerpts, err = book.DecodeExcerpts([]byte(excerpts.String)); err != nil {
			return book.Book{}, fmt.Errorf("book %s excerpts: %w", b.ID, err)
		}
	}

	return b, nil
}

func decodeNames(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	return book.DecodeNames([]byte(col.String)) //nolint:wrapcheck // callers add the column context
}
