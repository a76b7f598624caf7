package answer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Submit moderates and stores an answer to a question. One answer per user
// per question; a second attempt fails with domain.ErrAlreadyExists.
//
// An approved answer earns one contribution point in the current period.
// The answer row and the ledger credit commit in one transaction, so the
// ledger never counts an answer that was not stored.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Answer, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.AuthorID == userID {
		return nil, domain.NewValidationError("question_id", "cannot answer own question")
	}

	// The question text rides along as judge context; an answer can be
	// abusive only in relation to what it answers.
	result, status, err := s.moderation.Review(ctx, input.Text, question.Text)
	if err != nil {
		return nil, fmt.Errorf("moderate answer: %w", err)
	}

	a := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		AuthorID:   userID,
		Text:       input.Text,
		Status:     status,
		Moderation: result,
		CreatedAt:  time.Now().UTC(),
	}

	period := domain.PeriodOf(time.Now())
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.answers.Create(txCtx, a); err != nil {
			return fmt.Errorf("create answer: %w", err)
		}
		if a.Status == domain.StatusApproved {
			if err := s.ledger.RecordAnswer(txCtx, period, userID, a.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "answer submitted",
		"answer_id", a.ID.String(),
		"question_id", a.QuestionID.String(),
		"status", a.Status.String(),
	)
	return a, nil
}
