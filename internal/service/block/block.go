package block

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// BlockUserInput holds the parameters for blocking a user directly.
type BlockUserInput struct {
	BlockedUserID uuid.UUID
	Reason        string
}

// Validate checks all fields and collects all errors.
func (i *BlockUserInput) Validate() error {
	var errs []domain.FieldError

	if i.BlockedUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "blocked_user_id", Message: "required"})
	}
	if len(i.Reason) > 500 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long (max 500)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BlockUser blocks another user directly. Blocking an already-blocked user
// is a no-op; blocking yourself is a validation error.
func (s *Service) BlockUser(ctx context.Context, input BlockUserInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}
	if input.BlockedUserID == userID {
		return domain.NewValidationError("blocked_user_id", "cannot block yourself")
	}

	b := &domain.BlockRelation{
		BlockerID:     userID,
		BlockedUserID: input.BlockedUserID,
		Reason:        input.Reason,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.blocks.Upsert(ctx, b); err != nil {
		return fmt.Errorf("block user: %w", err)
	}

	s.log.InfoContext(ctx, "user blocked", "blocked_user_id", input.BlockedUserID.String())
	return nil
}

// BlockByQuestion blocks the author of a question, keeping the question as
// the block's origin so the user later remembers why.
func (s *Service) BlockByQuestion(ctx context.Context, questionID uuid.UUID, reason string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}
	if question.AuthorID == userID {
		return domain.NewValidationError("question_id", "cannot block yourself")
	}

	b := &domain.BlockRelation{
		BlockerID:        userID,
		BlockedUserID:    question.AuthorID,
		OriginQuestionID: &question.ID,
		QuestionText:     question.Text,
		Reason:           reason,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.blocks.Upsert(ctx, b); err != nil {
		return fmt.Errorf("block question author: %w", err)
	}

	s.log.InfoContext(ctx, "user blocked via question",
		"question_id", questionID.String(),
	)
	return nil
}

// Unblock removes a block. Idempotent.
func (s *Service) Unblock(ctx context.Context, blockedUserID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.blocks.Delete(ctx, userID, blockedUserID); err != nil {
		return fmt.Errorf("unblock user: %w", err)
	}
	return nil
}

// UnblockByQuestion removes the block on a question's author. Idempotent.
func (s *Service) UnblockByQuestion(ctx context.Context, questionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}

	if err := s.blocks.Delete(ctx, userID, question.AuthorID); err != nil {
		return fmt.Errorf("unblock question author: %w", err)
	}
	return nil
}

// List returns all of the caller's block relations, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.BlockRelation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	relations, err := s.blocks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return relations, nil
}

// ListQuestionBlocks returns the caller's blocks that originated from a
// question, so the client can show which question triggered each block.
func (s *Service) ListQuestionBlocks(ctx context.Context) ([]*domain.BlockRelation, error) {
	relations, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.BlockRelation, 0, len(relations))
	for _, b := range relations {
		if b.OriginQuestionID != nil {
			out = append(out, b)
		}
	}
	return out, nil
}
