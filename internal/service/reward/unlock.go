package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// QuestionUnlockResult reports the outcome of a question unlock.
type QuestionUnlockResult struct {
	UnlockID   uuid.UUID
	Amount     int64 // gross price paid
	PoolAmount int64 // net amount that entered the period pool
	Period     domain.Period
}

// AnswerUnlockResult reports the outcome of an answer unlock.
type AnswerUnlockResult struct {
	UnlockID     uuid.UUID
	Amount       int64 // gross price paid
	RewardAmount int64 // direct reward granted to the answerer
}

// UnlockQuestion records a paid unlock of a question's answers and funds the
// current period's pool with the pool share of the price.
//
// The unlock record and the pool increment commit in one transaction, so the
// pool never grows without a matching unlock record. A second unlock of the
// same question by the same user fails with domain.ErrAlreadyExists before
// any pool mutation.
func (s *Service) UnlockQuestion(ctx context.Context, questionID uuid.UUID) (*QuestionUnlockResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	// Repeat unlocks conflict here, before the transaction. Under
	// concurrency the unique constraint on the unlock table has the final
	// word.
	unlocked, err := s.unlocks.HasQuestionUnlock(ctx, questionID, userID)
	if err != nil {
		return nil, fmt.Errorf("check question unlock: %w", err)
	}
	if unlocked {
		return nil, fmt.Errorf("question already unlocked: %w", domain.ErrAlreadyExists)
	}

	period := domain.PeriodOf(time.Now())
	unlock := &domain.QuestionUnlock{
		ID:         uuid.New(),
		QuestionID: questionID,
		UnlockedBy: userID,
		Amount:     s.cfg.UnlockPrice,
		CreatedAt:  time.Now().UTC(),
	}

	var net int64
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.unlocks.CreateQuestionUnlock(txCtx, unlock); err != nil {
			return fmt.Errorf("create question unlock: %w", err)
		}

		var addErr error
		net, addErr = s.AddFunds(txCtx, domain.PeriodScope(period), unlock.Amount)
		if addErr != nil {
			return addErr
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "question unlocked",
		"question_id", questionID.String(),
		"period", string(period),
		"pool_amount", net,
	)

	return &QuestionUnlockResult{
		UnlockID:   unlock.ID,
		Amount:     unlock.Amount,
		PoolAmount: net,
		Period:     period,
	}, nil
}

// UnlockAnswer records a paid unlock of a single answer and grants the
// answerer a direct flat reward, no pool involved. One unlock per
// (answer, user); a duplicate fails with domain.ErrAlreadyExists and grants
// nothing.
func (s *Service) UnlockAnswer(ctx context.Context, answerID uuid.UUID) (*AnswerUnlockResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	answer, err := s.answers.GetByID(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("get answer: %w", err)
	}
	if answer.AuthorID == userID {
		return nil, domain.NewValidationError("answer_id", "cannot unlock own answer")
	}

	unlocked, err := s.unlocks.HasAnswerUnlock(ctx, answerID, userID)
	if err != nil {
		return nil, fmt.Errorf("check answer unlock: %w", err)
	}
	if unlocked {
		return nil, fmt.Errorf("answer already unlocked: %w", domain.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	unlock := &domain.AnswerUnlock{
		ID:         uuid.New(),
		AnswerID:   answerID,
		QuestionID: answer.QuestionID,
		UnlockedBy: userID,
		Amount:     s.cfg.UnlockPrice,
		CreatedAt:  now,
	}
	rewardAmount := poolShare(unlock.Amount, s.cfg.AnswerPercentage)
	record := &domain.RewardRecord{
		ID:             uuid.New(),
		Scope:          domain.AnswerScope(answerID),
		UserID:         answer.AuthorID,
		Amount:         rewardAmount,
		IsBestAnswerer: false,
		Status:         s.rewardStatus(),
		CreatedAt:      now,
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.unlocks.CreateAnswerUnlock(txCtx, unlock); err != nil {
			return fmt.Errorf("create answer unlock: %w", err)
		}
		if err := s.rewards.Create(txCtx, record); err != nil {
			return fmt.Errorf("create answer reward: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "answer unlocked",
		"answer_id", answerID.String(),
		"reward_amount", rewardAmount,
	)

	return &AnswerUnlockResult{
		UnlockID:     unlock.ID,
		Amount:       unlock.Amount,
		RewardAmount: rewardAmount,
	}, nil
}

// ListMyRewards returns the caller's reward records, newest first.
func (s *Service) ListMyRewards(ctx context.Context) ([]*domain.RewardRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	recs, err := s.rewards.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return recs, nil
}
