package book

import (
	"reflect"
	"testing"
)

func TestDecodeNames_Strings(t *testing.T) {
	names, err := DecodeNames([]byte(`["Frank Herbert", "Brian Herbert"]`))
	if err != nil {
		t.Fatalf("DecodeNames: %v", err)
	}
	want := []string{"Frank Herbert", "Brian Herbert"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestDecodeNames_Objects(t *testing.T) {
	names, err := DecodeNames([]byte(`[{"name":"Frank Herbert"},{"name":"Kevin J. Anderson","url":"/authors/kja"}]`))
	if err != nil {
		t.Fatalf("DecodeNames: %v", err)
	}
	want := []string{"Frank Herbert", "Kevin J. Anderson"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestDecodeNames_MixedShapes(t *testing.T) {
	names, err := DecodeNames([]byte(`["Science Fiction", {"name":"Space Opera"}]`))
	if err != nil {
		t.Fatalf("DecodeNames: %v", err)
	}
	want := []string{"Science Fiction", "Space Opera"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestDecodeNames_SkipsEmpty(t *testing.T) {
	names, err := DecodeNames([]byte(`["", {"name":""}, "Dune"]`))
	if err != nil {
		t.Fatalf("DecodeNames: %v", err)
	}
	if len(names) != 1 || names[0] != "Dune" {
		t.Errorf("expected [Dune], got %v", names)
	}
}

func TestDecodeNames_IllegalShape(t *testing.T) {
	if _, err := DecodeNames([]byte(`[42]`)); err == nil {
		t.Error("expected error for numeric element")
	}
}

func TestDecodeNames_Empty(t *testing.T) {
	names, err := DecodeNames(nil)
	if err != nil {
		t.Fatalf("DecodeNames: %v", err)
	}
	if names != nil {
		t.Errorf("expected nil, got %v", names)
	}
}

func TestDecodeExcerpts(t *testing.T) {
	excerpts, err := DecodeExcerpts([]byte(`["A beginning is a very delicate time.",{"text":"Fear is the mind-killer.","comment":"Litany against fear"}]`))
	if err != nil {
		t.Fatalf("DecodeExcerpts: %v", err)
	}
	want := []Excerpt{
		{Text: "A beginning is a very delicate time."},
		{Text: "Fear is the mind-killer.", Comment: "Litany against fear"},
	}
	if !reflect.DeepEqual(excerpts, want) {
		t.Errorf("got %+v, want %+v", excerpts, want)
	}
}

func TestPages_PrefersPageCount(t *testing.T) {
	b := Book{PageCount: 412, NumberOfPages: 500}
	if b.Pages() != 412 {
		t.Errorf("expected 412, got %d", b.Pages())
	}

	b = Book{NumberOfPages: 500}
	if b.Pages() != 500 {
		t.Errorf("expected 500, got %d", b.Pages())
	}
}
