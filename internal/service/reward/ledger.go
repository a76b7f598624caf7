package reward

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// RecordAnswer credits one approved answer in the user's contribution record
// for the period. Idempotent per answer id: the underlying upsert refuses to
// count an answer id already present in the record, so retries after partial
// failures are safe.
func (s *Service) RecordAnswer(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error {
	if err := s.contributions.RecordAnswer(ctx, period, userID, answerID); err != nil {
		return fmt.Errorf("record answer contribution: %w", err)
	}
	return nil
}

// RecordBestAnswerBonus credits the best-answer bonus for the period,
// creating the record if the user has no contributions yet. The at-most-one
// best answer per question invariant upstream keeps this to one bonus per
// question.
func (s *Service) RecordBestAnswerBonus(ctx context.Context, period domain.Period, userID uuid.UUID) error {
	if err := s.contributions.RecordBestAnswer(ctx, period, userID); err != nil {
		return fmt.Errorf("record best answer bonus: %w", err)
	}
	return nil
}
