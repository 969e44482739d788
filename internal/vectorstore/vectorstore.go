package vectorstore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"qp-generator-backend/utils"
)

// Chunk is the unit of indexing: a text segment plus its source metadata.
type Chunk struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Result is a similarity search hit, most-similar first in the returned slice.
type Result struct {
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Store keeps one chromem collection per sanitized subject name. Deletes are
// idempotent: a missing collection is treated as success.
type Store struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
}

// New opens (or creates) a persistent vector database at path.
func New(path string, embed chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}
	return &Store{db: db, embed: embed}, nil
}

// NewInMemory creates a non-persistent store, used in tests.
func NewInMemory(embed chromem.EmbeddingFunc) *Store {
	return &Store{db: chromem.NewDB(), embed: embed}
}

// Add inserts chunks into the subject's collection, creating it on first use.
func (s *Store) Add(ctx context.Context, subject string, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	collection, err := s.db.GetOrCreateCollection(utils.SanitizeSubject(subject), nil, s.embed)
	if err != nil {
		return fmt.Errorf("failed to get collection: %w", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:       chunk.ID,
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
		}
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search returns up to k results for the query, most similar first. A missing
// or empty collection yields no results, not an error. k is clamped to the
// collection size because chromem rejects nResults above the document count.
func (s *Store) Search(ctx context.Context, subject, query string, k int) ([]Result, error) {
	collection := s.db.GetCollection(utils.SanitizeSubject(subject), s.embed)
	if collection == nil {
		return nil, nil
	}

	n := collection.Count()
	if n > k {
		n = k
	}
	if n <= 0 {
		return nil, nil
	}

	hits, err := collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		results[i] = Result{
			Content:    hit.Content,
			Metadata:   hit.Metadata,
			Similarity: hit.Similarity,
		}
	}
	return results, nil
}

// DeleteWhere removes all documents in the subject's collection whose
// metadata matches the filter. Missing collections are a no-op.
func (s *Store) DeleteWhere(ctx context.Context, subject string, where map[string]string) error {
	collection := s.db.GetCollection(utils.SanitizeSubject(subject), s.embed)
	if collection == nil {
		return nil
	}

	if err := collection.Delete(ctx, where, nil); err != nil {
		return fmt.Errorf("failed to delete document vectors: %w", err)
	}
	return nil
}

// DeleteCollection drops the subject's entire collection. Deleting a
// collection that does not exist reports success.
func (s *Store) DeleteCollection(subject string) error {
	name := utils.SanitizeSubject(subject)
	if s.db.GetCollection(name, s.embed) == nil {
		return nil
	}
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// Count reports the number of indexed chunks for a subject.
func (s *Store) Count(subject string) int {
	collection := s.db.GetCollection(utils.SanitizeSubject(subject), s.embed)
	if collection == nil {
		return 0
	}
	return collection.Count()
}
