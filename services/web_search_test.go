package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const searchResultsHTML = `<html><body>
<div class="result">
  <a class="result__a" href="https://example.org/os">Operating Systems Overview</a>
  <div class="result__snippet">Processes, threads and scheduling explained.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/paging">Memory Paging</a>
  <div class="result__snippet">Virtual memory and page tables.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/fs">File Systems</a>
  <div class="result__snippet">Inodes and journaling.</div>
</div>
</body></html>`

func newTestSearcher(handler http.HandlerFunc) (*WebSearcher, *httptest.Server) {
	server := httptest.NewServer(handler)
	searcher := &WebSearcher{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    server.URL,
	}
	return searcher, server
}

func TestWebSearch(t *testing.T) {
	var gotQuery string
	searcher, server := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(searchResultsHTML))
	})
	defer server.Close()

	results, err := searcher.Search(context.Background(), "operating systems", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if gotQuery != "operating systems" {
		t.Errorf("query not forwarded, got %q", gotQuery)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Title != "Operating Systems Overview" {
		t.Errorf("unexpected first title: %q", results[0].Title)
	}
	if results[0].Snippet != "Processes, threads and scheduling explained." {
		t.Errorf("unexpected first snippet: %q", results[0].Snippet)
	}
	if results[0].URL != "https://example.org/os" {
		t.Errorf("unexpected first URL: %q", results[0].URL)
	}
}

func TestWebSearchMaxResults(t *testing.T) {
	searcher, server := newTestSearcher(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchResultsHTML))
	})
	defer server.Close()

	results, err := searcher.Search(context.Background(), "os", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected results capped at 2, got %d", len(results))
	}
}

func TestWebSearchErrorStatus(t *testing.T) {
	searcher, server := newTestSearcher(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	if _, err := searcher.Search(context.Background(), "os", 3); err == nil {
		t.Error("expected an error for non-200 response")
	}
}

func TestFormatResultsForContext(t *testing.T) {
	formatted := FormatResultsForContext([]WebSearchResult{
		{Title: "Paging", Snippet: "Virtual memory basics."},
		{Title: "Scheduling", Snippet: "Round robin and priority."},
	})

	if !strings.HasPrefix(formatted, "Additional Web Context:\n") {
		t.Errorf("missing header: %q", formatted)
	}
	if !strings.Contains(formatted, "1. Paging: Virtual memory basics.") {
		t.Errorf("missing first entry: %q", formatted)
	}
	if !strings.Contains(formatted, "2. Scheduling: Round robin and priority.") {
		t.Errorf("missing second entry: %q", formatted)
	}
}
