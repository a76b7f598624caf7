package question

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Report files a report against a question. Reports are append-only input
// for human review; they do not change the question's status.
func (s *Service) Report(ctx context.Context, input ReportInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if _, err := s.questions.GetByID(ctx, input.QuestionID); err != nil {
		return fmt.Errorf("get question: %w", err)
	}

	rep := &domain.Report{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		Reason:     input.Reason,
		ReportedBy: userID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reports.Create(ctx, rep); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	s.log.InfoContext(ctx, "question reported",
		"question_id", input.QuestionID.String(),
	)
	return nil
}
