package vectorstore

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

// testEmbedding maps each word onto a bucket of a fixed-size vector, so texts
// sharing words land near each other. Deterministic and offline.
func testEmbedding() chromem.EmbeddingFunc {
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

func makeChunks(subject, source string, contents ...string) []Chunk {
	chunks := make([]Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = Chunk{
			ID:       uuid.NewString(),
			Content:  content,
			Metadata: map[string]string{"source": source, "subject": subject},
		}
	}
	return chunks
}

func TestStoreAddAndSearch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory(testEmbedding())

	err := store.Add(ctx, "Physics", makeChunks("Physics", "notes.txt",
		"newton laws of motion",
		"thermodynamics entropy heat",
		"quantum mechanics wave function"))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if store.Count("Physics") != 3 {
		t.Fatalf("expected 3 indexed chunks, got %d", store.Count("Physics"))
	}

	results, err := store.Search(ctx, "Physics", "newton laws of motion", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Content != "newton laws of motion" {
		t.Errorf("expected exact match first, got %q", results[0].Content)
	}
	if results[0].Metadata["source"] != "notes.txt" {
		t.Errorf("metadata not carried through: %v", results[0].Metadata)
	}
}

func TestStoreSubjectIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory(testEmbedding())

	if err := store.Add(ctx, "Physics", makeChunks("Physics", "a.txt", "newton laws of motion")); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, "Biology", makeChunks("Biology", "b.txt", "cell division mitosis")); err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, "Biology", "newton laws of motion", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, r := range results {
		if r.Metadata["subject"] != "Biology" {
			t.Errorf("result leaked across subjects: %v", r.Metadata)
		}
	}
}

func TestStoreSearchMissingCollection(t *testing.T) {
	store := NewInMemory(testEmbedding())

	results, err := store.Search(context.Background(), "Nonexistent", "anything", 5)
	if err != nil {
		t.Fatalf("missing collection should not error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestStoreSearchClampsK(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory(testEmbedding())

	if err := store.Add(ctx, "Physics", makeChunks("Physics", "a.txt", "one topic", "another topic")); err != nil {
		t.Fatal(err)
	}

	// k above the collection size must not error
	results, err := store.Search(ctx, "Physics", "topic", 10)
	if err != nil {
		t.Fatalf("oversized k should be clamped, got error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected all 2 documents, got %d", len(results))
	}
}

func TestStoreDeleteWhere(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory(testEmbedding())

	if err := store.Add(ctx, "Physics", makeChunks("Physics", "keep.txt", "alpha", "beta")); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, "Physics", makeChunks("Physics", "drop.txt", "gamma", "delta", "epsilon")); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteWhere(ctx, "Physics", map[string]string{"source": "drop.txt"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := store.Count("Physics"); got != 2 {
		t.Errorf("expected 2 chunks to survive, got %d", got)
	}

	results, err := store.Search(ctx, "Physics", "gamma", 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Metadata["source"] == "drop.txt" {
			t.Errorf("deleted source still searchable: %v", r.Metadata)
		}
	}

	// Missing collection is a no-op
	if err := store.DeleteWhere(ctx, "Nonexistent", map[string]string{"source": "x"}); err != nil {
		t.Errorf("delete on missing collection should succeed, got %v", err)
	}
}

func TestStoreDeleteCollectionIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory(testEmbedding())

	if err := store.Add(ctx, "Physics", makeChunks("Physics", "a.txt", "alpha")); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteCollection("Physics"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if store.Count("Physics") != 0 {
		t.Error("collection should be empty after delete")
	}
	if err := store.DeleteCollection("Physics"); err != nil {
		t.Errorf("second delete should succeed, got %v", err)
	}
}

func TestStoreAddEmpty(t *testing.T) {
	store := NewInMemory(testEmbedding())
	if err := store.Add(context.Background(), "Physics", nil); err != nil {
		t.Errorf("adding no chunks should be a no-op, got %v", err)
	}
	if store.Count("Physics") != 0 {
		t.Error("no collection should be created for an empty add")
	}
}
