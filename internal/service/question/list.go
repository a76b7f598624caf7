package question

import (
	"context"
	"fmt"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Feed is the merged home-screen payload: the next random question plus the
// caller's own and favorited questions.
type Feed struct {
	Next      *domain.Question
	Mine      []*domain.Question
	Favorites []*domain.Question
}

// GetFeed assembles the merged feed for the caller.
func (s *Service) GetFeed(ctx context.Context) (*Feed, error) {
	next, err := s.Next(ctx)
	if err != nil {
		return nil, err
	}

	mine, err := s.ListMine(ctx)
	if err != nil {
		return nil, err
	}

	favorites, err := s.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}

	return &Feed{Next: next, Mine: mine, Favorites: favorites}, nil
}

// ListMine returns the questions the caller authored, newest first.
func (s *Service) ListMine(ctx context.Context) ([]*domain.Question, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	qs, err := s.questions.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own questions: %w", err)
	}
	return qs, nil
}

// ListAnswered returns the questions the caller has answered.
func (s *Service) ListAnswered(ctx context.Context) ([]*domain.Question, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ids, err := s.answers.ListAnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list answered question ids: %w", err)
	}

	qs, err := s.questions.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list answered questions: %w", err)
	}
	return qs, nil
}

// ListFavorites returns the questions the caller has favorited.
func (s *Service) ListFavorites(ctx context.Context) ([]*domain.Question, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ids, err := s.favorites.ListQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}

	qs, err := s.questions.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list favorite questions: %w", err)
	}
	return qs, nil
}
