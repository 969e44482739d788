package services

import (
	"context"
	"strings"

	"qp-generator-backend/internal/logger"
	"qp-generator-backend/internal/vectorstore"
)

// NoContextFallback is handed to the generator when a subject has no indexed
// material, so the model relies on general knowledge instead of fabricating
// citations from an empty context.
const NoContextFallback = "No direct context found in uploaded materials. Use general knowledge."

// Per-task result counts: targeted question generation samples narrowly,
// quizzes and chat wider, full-exam generation widest.
const (
	TopKQuestions = 5
	TopKQuiz      = 8
	TopKChat      = 8
	TopKFullExam  = 10
)

// Retriever answers natural-language queries against a subject's vector
// collection and returns the top-k chunks as one context string. When the
// subject has nothing indexed it falls back to web search (if enabled) and
// then to the fixed sentinel.
type Retriever struct {
	store    *vectorstore.Store
	searcher *WebSearcher // nil when web search is disabled
}

func NewRetriever(store *vectorstore.Store, searcher *WebSearcher) *Retriever {
	return &Retriever{store: store, searcher: searcher}
}

// Retrieve joins the top-k search results with a blank line. The returned
// context is never empty.
func (r *Retriever) Retrieve(ctx context.Context, subject, query string, k int) (string, error) {
	results, err := r.store.Search(ctx, subject, query, k)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return r.fallbackContext(ctx, query), nil
	}

	texts := make([]string, len(results))
	for i, result := range results {
		texts[i] = result.Content
	}
	return strings.Join(texts, "\n\n"), nil
}

func (r *Retriever) fallbackContext(ctx context.Context, query string) string {
	if r.searcher == nil {
		return NoContextFallback
	}

	hits, err := r.searcher.Search(ctx, query, 3)
	if err != nil || len(hits) == 0 {
		if err != nil {
			logger.Warn("Web search fallback failed", "error", err)
		}
		return NoContextFallback
	}
	return FormatResultsForContext(hits)
}
