package services

import (
	"context"
	"hash/fnv"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"

	"qp-generator-backend/internal/vectorstore"
)

// wordEmbedding buckets words into a fixed-size normalized vector, keeping
// retrieval deterministic and offline.
func wordEmbedding() chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		const dims = 16
		vec := make([]float32, dims)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			h.Write([]byte(word))
			vec[h.Sum32()%dims]++
		}

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			vec[0] = 1
			return vec, nil
		}
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
		return vec, nil
	}
}

func indexChunks(t *testing.T, store *vectorstore.Store, subject string, contents ...string) {
	t.Helper()
	chunks := make([]vectorstore.Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = vectorstore.Chunk{
			ID:       uuid.NewString(),
			Content:  content,
			Metadata: map[string]string{"source": "notes.txt", "subject": subject},
		}
	}
	if err := store.Add(context.Background(), subject, chunks); err != nil {
		t.Fatalf("failed to index chunks: %v", err)
	}
}

func TestRetrieveJoinsResults(t *testing.T) {
	store := vectorstore.NewInMemory(wordEmbedding())
	indexChunks(t, store, "Physics",
		"newton laws of motion",
		"thermodynamics entropy heat",
		"quantum mechanics wave function")

	retriever := NewRetriever(store, nil)
	contextText, err := retriever.Retrieve(context.Background(), "Physics", "newton laws of motion", 2)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	parts := strings.Split(contextText, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 joined chunks, got %d: %q", len(parts), contextText)
	}
	if parts[0] != "newton laws of motion" {
		t.Errorf("expected closest chunk first, got %q", parts[0])
	}
}

func TestRetrieveSentinelForEmptySubject(t *testing.T) {
	store := vectorstore.NewInMemory(wordEmbedding())
	retriever := NewRetriever(store, nil)

	contextText, err := retriever.Retrieve(context.Background(), "Unknown", "anything", 5)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if contextText != NoContextFallback {
		t.Errorf("expected sentinel fallback, got %q", contextText)
	}
}

func TestRetrieveWebFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchResultsHTML))
	}))
	defer server.Close()

	searcher := &WebSearcher{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    server.URL,
	}
	store := vectorstore.NewInMemory(wordEmbedding())
	retriever := NewRetriever(store, searcher)

	contextText, err := retriever.Retrieve(context.Background(), "Unknown", "operating systems", 5)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if !strings.HasPrefix(contextText, "Additional Web Context:") {
		t.Errorf("expected web context, got %q", contextText)
	}
	if !strings.Contains(contextText, "Operating Systems Overview") {
		t.Errorf("expected scraped titles in context, got %q", contextText)
	}
}

func TestRetrieveWebFallbackFailureUsesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	searcher := &WebSearcher{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    server.URL,
	}
	store := vectorstore.NewInMemory(wordEmbedding())
	retriever := NewRetriever(store, searcher)

	contextText, err := retriever.Retrieve(context.Background(), "Unknown", "anything", 5)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if contextText != NoContextFallback {
		t.Errorf("expected sentinel when web search fails, got %q", contextText)
	}
}
