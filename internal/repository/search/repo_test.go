package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bookdex/bookdex/internal/db"
	"github.com/bookdex/bookdex/internal/domain"
)

// fakeSearcher captures the last query and replays a canned result.
type fakeSearcher struct {
	lastText *db.TextQuery
	lastKNN  *db.KNNQuery
	result   *db.SearchResult
	count    int
	err      error
}

func (f *fakeSearcher) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	f.lastText = q
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &db.SearchResult{}, nil
	}
	return f.result, nil
}

func (f *fakeSearcher) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.lastKNN = q
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &db.SearchResult{}, nil
	}
	return f.result, nil
}

func (f *fakeSearcher) SearchCount(_ context.Context, _, _ string) (int, error) {
	return f.count, f.err
}

func TestKeywordSearch_QueryShape(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	if _, err := repo.KeywordSearch(context.Background(), "dune messiah", 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := fake.lastText
	if q.IndexName != "bookdex:books:idx" {
		t.Errorf("unexpected index name %q", q.IndexName)
	}
	if q.TopK != 10 {
		t.Errorf("unexpected topK %d", q.TopK)
	}
	for _, want := range []string{
		`(@title:"dune messiah")=>{$weight:5}`,
		`(@title:(dune messiah))=>{$weight:3}`,
		`(@title:(dune* messiah*))=>{$weight:3}`,
		`(@authors:(dune messiah))=>{$weight:2}`,
		`(@description:(dune messiah))=>{$weight:1}`,
		`(@subjects|categories:(dune messiah))=>{$weight:1}`,
	} {
		if !strings.Contains(q.Query, want) {
			t.Errorf("query missing clause %q:\n%s", want, q.Query)
		}
	}
	if strings.Contains(q.Query, "@code:") {
		t.Errorf("plain text query must not get a code clause:\n%s", q.Query)
	}
}

func TestKeywordSearch_CodeClauseStripsHyphens(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	if _, err := repo.KeywordSearch(context.Background(), "978-0-441-01359-3", 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fake.lastText.Query, `(@code:{9780441013593})=>{$weight:10}`) {
		t.Errorf("expected hyphen-stripped code clause:\n%s", fake.lastText.Query)
	}
}

func TestKeywordSearch_ExactIDClause(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	if _, err := repo.KeywordSearch(context.Background(), "b1", 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fake.lastText.Query, `(@id:{b1})=>{$weight:10}`) {
		t.Errorf("single-token query must get an exact id clause:\n%s", fake.lastText.Query)
	}

	if _, err := repo.KeywordSearch(context.Background(), "dune messiah", 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(fake.lastText.Query, "(@id:") {
		t.Errorf("multi-token query must not get an id clause:\n%s", fake.lastText.Query)
	}
}

func TestKeywordSearch_IDFilterPrefixed(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	if _, err := repo.KeywordSearch(context.Background(), "dune", 5, []string{"b1", "b2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(fake.lastText.Query, "@id:{b1|b2} (") {
		t.Errorf("expected id pre-filter prefix:\n%s", fake.lastText.Query)
	}
}

func TestKeywordSearch_EmptyAfterTokenize(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	got, err := repo.KeywordSearch(context.Background(), "   ", 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil || fake.lastText != nil {
		t.Error("blank query must short-circuit without hitting the engine")
	}
}

func TestKeywordSearch_MapsIndexNotFound(t *testing.T) {
	fake := &fakeSearcher{err: db.ErrIndexNotFound}
	repo := New(fake, "bookdex:")

	_, err := repo.KeywordSearch(context.Background(), "dune", 5, nil)
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestVectorSearch_ScoreScale(t *testing.T) {
	fake := &fakeSearcher{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: "bookdex:books:b1", Score: 0.0, Fields: map[string]string{"id": "b1", "title": "A"}},
			{Key: "bookdex:books:b2", Score: 0.75, Fields: map[string]string{"id": "b2", "title": "B"}},
		},
	}}
	repo := New(fake, "bookdex:")

	got, err := repo.VectorSearch(context.Background(), []float32{0.1, 0.2}, 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Score != 2.0 {
		t.Errorf("zero distance must score 2.0, got %v", got[0].Score)
	}
	if got[1].Score != 1.25 {
		t.Errorf("distance 0.75 must score 1.25, got %v", got[1].Score)
	}
}

func TestVectorSearch_IDFilter(t *testing.T) {
	fake := &fakeSearcher{}
	repo := New(fake, "bookdex:")

	if _, err := repo.VectorSearch(context.Background(), []float32{0.1}, 4, []string{"b9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastKNN.Filter != "@id:{b9}" {
		t.Errorf("unexpected filter %q", fake.lastKNN.Filter)
	}
	if fake.lastKNN.K != 4 {
		t.Errorf("unexpected k %d", fake.lastKNN.K)
	}
}

func TestVectorSearch_MapsIndexNotFound(t *testing.T) {
	fake := &fakeSearcher{err: db.ErrIndexNotFound}
	repo := New(fake, "bookdex:")

	_, err := repo.VectorSearch(context.Background(), []float32{0.1}, 4, nil)
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestDocFromEntry(t *testing.T) {
	fake := &fakeSearcher{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:   "bookdex:books:b1",
			Score: 1.5,
			Fields: map[string]string{
				"title":      "Dune",
				"authors":    "Frank Herbert, Kevin J. Anderson",
				"page_count": "412",
			},
		}},
	}}
	repo := New(fake, "bookdex:")

	got, err := repo.KeywordSearch(context.Background(), "dune", 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := got[0].Doc
	if doc.ID != "b1" {
		t.Errorf("expected id recovered from key, got %q", doc.ID)
	}
	if len(doc.Authors) != 2 || doc.Authors[1] != "Kevin J. Anderson" {
		t.Errorf("unexpected authors %v", doc.Authors)
	}
	if doc.PageCount != 412 {
		t.Errorf("unexpected page count %d", doc.PageCount)
	}
}

func TestCount(t *testing.T) {
	fake := &fakeSearcher{count: 7}
	repo := New(fake, "bookdex:")

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7, got %d", n)
	}
}

func TestLooksLikeCode(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9780441013593", true},
		{"044156956X", true},
		{"04415695X0", false},
		{"dune", false},
		{"1234", false},
	}
	for _, c := range cases {
		if got := looksLikeCode(c.in); got != c.want {
			t.Errorf("looksLikeCode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
