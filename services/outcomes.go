package services

import (
	"context"
	"errors"

	"qp-generator-backend/internal/logger"
)

// OutcomeService returns a subject's five course outcomes, generating and
// caching them on first use. A corrupt cache is regenerated and overwritten.
// Concurrent regeneration for the same subject is last-write-wins.
type OutcomeService struct {
	store     *DocumentStore
	generator *Generator
}

func NewOutcomeService(store *DocumentStore, generator *Generator) *OutcomeService {
	return &OutcomeService{store: store, generator: generator}
}

// GetOrCreate loads the cached outcomes when the cache file is valid,
// otherwise generates a fresh set from the given context and persists it.
func (s *OutcomeService) GetOrCreate(ctx context.Context, subject, contextText string) ([]string, error) {
	outcomes, err := s.store.LoadOutcomes(subject)
	if err == nil {
		return outcomes, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logger.Warn("Regenerating course outcomes", "subject", subject, "error", err)
	}

	outcomes, err = s.generator.GenerateCourseOutcomes(ctx, subject, contextText)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveOutcomes(subject, outcomes); err != nil {
		// The outcomes are still usable this request; the next one regenerates.
		logger.Error("Failed to persist course outcomes", "subject", subject, "error", err)
	}
	return outcomes, nil
}
