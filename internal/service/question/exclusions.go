package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// exclusionSet is everything the random selector must not serve to a user:
// authors they blocked, and questions they already answered or favorited.
type exclusionSet struct {
	authors   map[uuid.UUID]struct{}
	questions map[uuid.UUID]struct{}

	authorIDs   []uuid.UUID
	questionIDs []uuid.UUID
}

func (e *exclusionSet) hasAuthor(id uuid.UUID) bool {
	_, ok := e.authors[id]
	return ok
}

func (e *exclusionSet) hasQuestion(id uuid.UUID) bool {
	_, ok := e.questions[id]
	return ok
}

// resolveExclusions builds the exclusion set for a user. A user with no
// blocks, answers or favorites gets empty sets, not an error; that is the
// normal new-user case.
func (s *Service) resolveExclusions(ctx context.Context, userID uuid.UUID) (*exclusionSet, error) {
	blocked, err := s.blocks.ListBlockedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}

	answered, err := s.answers.ListAnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list answered questions: %w", err)
	}

	favorited, err := s.favorites.ListQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorited questions: %w", err)
	}

	e := &exclusionSet{
		authors:   make(map[uuid.UUID]struct{}, len(blocked)),
		questions: make(map[uuid.UUID]struct{}, len(answered)+len(favorited)),
	}

	for _, id := range blocked {
		e.authors[id] = struct{}{}
		e.authorIDs = append(e.authorIDs, id)
	}
	for _, id := range answered {
		if _, ok := e.questions[id]; !ok {
			e.questions[id] = struct{}{}
			e.questionIDs = append(e.questionIDs, id)
		}
	}
	for _, id := range favorited {
		if _, ok := e.questions[id]; !ok {
			e.questions[id] = struct{}{}
			e.questionIDs = append(e.questionIDs, id)
		}
	}

	return e, nil
}

// truncate caps an id list at the store's not-in limit. The SQL filter is an
// optimization only; the full set is re-checked in memory after the query.
func truncate(ids []uuid.UUID, cap int) []uuid.UUID {
	if len(ids) <= cap {
		return ids
	}
	return ids[:cap]
}
