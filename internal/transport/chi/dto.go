package chi

import (
	"github.com/bookdex/bookdex/internal/domain/document"
	"github.com/bookdex/bookdex/internal/domain/search/result"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type scopedSearchRequest struct {
	Query string   `json:"query"`
	Limit int      `json:"limit,omitempty"`
	IDs   []string `json:"ids"`
}

type bookItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	Description   string   `json:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Edition       string   `json:"edition,omitempty"`
	Language      string   `json:"language,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Subjects      []string `json:"subjects,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty"`
}

type searchResultItem struct {
	Book         bookItem `json:"book"`
	Score        float64  `json:"score"`
	KeywordScore float64  `json:"keyword_score"`
	VectorScore  float64  `json:"vector_score"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
	Limit int                `json:"limit"`
}

type statsResponse struct {
	Documents int `json:"documents"`
}

type syncResponse struct {
	Indexed   int  `json:"indexed"`
	Recreated bool `json:"recreated"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func bookFromDoc(doc document.Document) bookItem {
	return bookItem{
		ID:            doc.ID,
		Title:         doc.Title,
		Authors:       doc.Authors,
		ISBN:          doc.ISBN,
		Description:   doc.Description,
		Publisher:     doc.Publisher,
		PublishedDate: doc.PublishedDate,
		Edition:       doc.Edition,
		Language:      doc.Language,
		Categories:    doc.Categories,
		Subjects:      doc.Subjects,
		PageCount:     doc.PageCount,
		CoverURL:      doc.CoverURL,
	}
}

func searchResponseFromRanked(results []result.Ranked, limit int) searchResponse {
	items := make([]searchResultItem, len(results))
	for i, r := range results {
		items[i] = searchResultItem{
			Book:         bookFromDoc(r.Doc),
			Score:        r.Score,
			KeywordScore: r.KeywordScore,
			VectorScore:  r.VectorScore,
		}
	}
	return searchResponse{Items: items, Total: len(items), Limit: limit}
}
