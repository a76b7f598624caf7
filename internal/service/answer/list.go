package answer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// ListByQuestion returns the answers the caller may see on a question:
// their own answers always, and other users' approved answers only when the
// caller owns the question. Answerers never see each other's answers.
func (s *Service) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	all, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	isOwner := question.AuthorID == userID
	visible := make([]*domain.Answer, 0, len(all))
	for _, a := range all {
		switch {
		case a.AuthorID == userID:
			visible = append(visible, a)
		case isOwner && a.Status == domain.StatusApproved:
			visible = append(visible, a)
		}
	}
	return visible, nil
}
