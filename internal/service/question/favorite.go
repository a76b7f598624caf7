package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Favorite marks a question as favorited by the caller. Favorited questions
// leave the caller's random feed. Idempotent.
func (s *Service) Favorite(ctx context.Context, questionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return fmt.Errorf("get question: %w", err)
	}

	if err := s.favorites.Add(ctx, userID, questionID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Unfavorite removes a favorite. Idempotent.
func (s *Service) Unfavorite(ctx context.Context, questionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.favorites.Remove(ctx, userID, questionID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}
