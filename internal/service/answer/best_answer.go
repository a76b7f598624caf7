package answer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// BestAnswerResult reports a best-answer selection and, when a legacy
// per-question pool existed, its distribution. Distribution is nil when no
// pool was drained (the normal case under period pools) or when draining
// failed after the selection committed.
type BestAnswerResult struct {
	Question     *domain.Question
	Answer       *domain.Answer
	Distribution *reward.DistributionResult
}

// SelectBest marks an answer as the best answer of a question. Only the
// question's author may select, and only once; the choice is immutable.
//
// The selection, the answer flag and the answerer's bonus points commit in
// one transaction. Draining a legacy per-question pool happens after the
// commit as a best-effort side effect: a distribution failure is logged and
// reported as a nil Distribution, never rolled back into the selection.
func (s *Service) SelectBest(ctx context.Context, questionID, answerID uuid.UUID) (*BestAnswerResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.AuthorID != userID {
		return nil, fmt.Errorf("select best answer: %w", domain.ErrForbidden)
	}
	if question.BestAnswerID != nil {
		return nil, fmt.Errorf("best answer already selected: %w", domain.ErrConflict)
	}

	answer, err := s.answers.GetByID(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("get answer: %w", err)
	}
	if answer.QuestionID != questionID {
		return nil, domain.NewValidationError("answer_id", "answer does not belong to this question")
	}

	period := domain.PeriodOf(time.Now())
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The store-side guard (best_answer_id IS NULL) is the authoritative
		// immutability check; the read above only gives a friendlier error.
		if err := s.questions.SetBestAnswer(txCtx, questionID, answerID); err != nil {
			return err
		}
		if err := s.answers.MarkBest(txCtx, answerID); err != nil {
			return err
		}
		if err := s.ledger.RecordBestAnswerBonus(txCtx, period, answer.AuthorID); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	question.BestAnswerID = &answerID
	answer.IsBestAnswer = true

	result := &BestAnswerResult{Question: question, Answer: answer}

	dist, err := s.distributor.Distribute(ctx, domain.QuestionScope(questionID))
	if err != nil {
		s.log.ErrorContext(ctx, "question pool distribution failed after best answer",
			"question_id", questionID.String(),
			"error", err.Error(),
		)
	} else if dist.Outcome == reward.OutcomeDistributed {
		result.Distribution = dist
	}

	s.log.InfoContext(ctx, "best answer selected",
		"question_id", questionID.String(),
		"answer_id", answerID.String(),
	)
	return result, nil
}
