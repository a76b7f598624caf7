package question

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Submit moderates and stores a new question.
//
// The moderation gateway runs before any write; if it is unavailable nothing
// is stored. Rejected questions are stored too (with status rejected) so the
// author sees the outcome and the audit snapshot is kept.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Question, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, status, err := s.moderation.Review(ctx, input.Text, "")
	if err != nil {
		return nil, fmt.Errorf("moderate question: %w", err)
	}

	q := &domain.Question{
		ID:         uuid.New(),
		Text:       input.Text,
		AuthorID:   userID,
		Status:     status,
		RandomKey:  s.randFloat(),
		Moderation: result,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.InfoContext(ctx, "question submitted",
		"question_id", q.ID.String(),
		"status", q.Status.String(),
	)

	return q, nil
}
