package search

import (
	"errors"
	"testing"

	"github.com/goliatone/go-remote-media/internal/resources"
)

func TestNewQueryClampsLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{25, 25},
		{500, 500},
		{501, MaxLimit},
	}
	for _, tc := range cases {
		q, err := NewQuery(QueryInput{Limit: tc.in})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Limit() != tc.want {
			t.Errorf("limit %d: want %d, got %d", tc.in, tc.want, q.Limit())
		}
	}
}

func TestNewQueryNormalisesFields(t *testing.T) {
	q, err := NewQuery(QueryInput{
		Query:        " cat ",
		ResourceType: "VIDEO",
		Limit:        25,
		Folder:       "/media/cats/",
		Tag:          " pets ",
		NextCursor:   "823b",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "cat" || q.ResourceType() != resources.ResourceTypeVideo || q.Folder() != "media/cats" || q.Tag() != "pets" {
		t.Fatalf("unexpected query %s", q)
	}
	if q.NextCursor() != "823b" {
		t.Fatalf("expected cursor to be kept verbatim, got %q", q.NextCursor())
	}
}

func TestNewQueryDefaultsToImage(t *testing.T) {
	q, err := NewQuery(QueryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ResourceType() != resources.ResourceTypeImage {
		t.Fatalf("expected image default, got %q", q.ResourceType())
	}
}

func TestNewQueryRejectsInvalidInput(t *testing.T) {
	cases := map[string]QueryInput{
		"resource type": {ResourceType: "auto"},
		"folder":        {Folder: "../secrets"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewQuery(in)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
			var invalid *InvalidQueryError
			if !errors.As(err, &invalid) || len(invalid.Fields) != 1 {
				t.Fatalf("expected one field issue, got %v", err)
			}
		})
	}
}

func TestWithCursorReturnsCopy(t *testing.T) {
	first := MustQuery(QueryInput{Query: "cat", Limit: 10})
	next := first.WithCursor("abc")

	if first.NextCursor() != "" {
		t.Fatalf("expected original query untouched, got %q", first.NextCursor())
	}
	if next.NextCursor() != "abc" || next.Text() != "cat" || next.Limit() != 10 {
		t.Fatalf("unexpected next query %s", next)
	}
	if first == next {
		t.Fatal("expected queries to differ")
	}
	if next.WithCursor("") != first {
		t.Fatal("expected resetting the cursor to restore the original query")
	}
}
