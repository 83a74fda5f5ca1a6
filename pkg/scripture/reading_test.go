package scripture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile("testdata/passage.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("passage") == "" {
			http.Error(w, "missing passage", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
}

func TestFetchExtractsPassage(t *testing.T) {
	srv := newFixtureServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, map[string]string{"vnum": "yes"}, 0)
	reading, err := c.Fetch(context.Background(), "Acts 2:1-13")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !reading.Available {
		t.Error("fetched reading must be marked available")
	}
	text := reading.Text()
	if !strings.Contains(text, "When the day of Pentecost had come") {
		t.Errorf("missing passage text: %q", text)
	}
	if !strings.Contains(text, "2 And suddenly from heaven") {
		t.Errorf("inline verse numbers lost: %q", text)
	}

	// The extracted text must tokenize into segments with verse numbers.
	var numbers []string
	for _, para := range reading.Segments() {
		for _, seg := range para {
			if seg.Number != "" {
				numbers = append(numbers, seg.Number)
			}
		}
	}
	if len(numbers) < 5 {
		t.Errorf("expected several verse segments, got %v", numbers)
	}
}

func TestFetchAllPlaceholderOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	results := c.FetchAll(context.Background(), []Ref{
		{Label: "reading", Reference: "1 Corinthians 10:1-13"},
		{Label: "gospel", Reference: "Luke 13:1-9"},
	})

	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	for label, reading := range results {
		if reading.Available {
			t.Errorf("%s: unavailable provider must yield a placeholder", label)
		}
		if !strings.Contains(reading.Text(), "[Reading text not available:") {
			t.Errorf("%s: placeholder text = %q", label, reading.Text())
		}
	}
	if results["gospel"].Reference != "Luke 13:1-9" {
		t.Errorf("placeholder keeps the citation: %q", results["gospel"].Reference)
	}
}

func TestFetchAllSkipsEmptyReferences(t *testing.T) {
	srv := newFixtureServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	results := c.FetchAll(context.Background(), []Ref{
		{Label: "reading", Reference: "Acts 2:1-13"},
		{Label: "gospel", Reference: ""},
	})
	if _, ok := results["gospel"]; ok {
		t.Error("empty references must be skipped")
	}
	if _, ok := results["reading"]; !ok {
		t.Error("non-empty reference missing from results")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("Genesis 12:1-4a")
	if p.Available {
		t.Error("placeholder is not available text")
	}
	if p.Text() != "[Reading text not available: Genesis 12:1-4a]" {
		t.Errorf("placeholder text = %q", p.Text())
	}
}
