package question

import (
	"context"
	"fmt"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// Next picks a random question the user has not seen, authored or excluded.
//
// A uniform threshold t is drawn and the approved questions with
// random_key >= t are scanned in ascending order; if that side is empty the
// scan wraps to random_key < t. Because random keys are themselves uniform,
// the first survivor is an (approximately) uniform pick without a full scan.
//
// Returns (nil, nil) when no eligible question exists. That is a normal
// outcome for heavy users, not an error.
func (s *Service) Next(ctx context.Context) (*domain.Question, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	exc, err := s.resolveExclusions(ctx, userID)
	if err != nil {
		return nil, err
	}

	threshold := s.randFloat()

	filter := domain.CandidateFilter{
		Threshold:           threshold,
		Above:               true,
		RequesterID:         userID,
		ExcludedAuthorIDs:   truncate(exc.authorIDs, s.cfg.ExclusionCap),
		ExcludedQuestionIDs: truncate(exc.questionIDs, s.cfg.ExclusionCap),
		Limit:               s.cfg.BatchSize,
	}

	candidates, err := s.questions.SelectCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("select candidates above threshold: %w", err)
	}

	if len(candidates) == 0 {
		filter.Above = false
		candidates, err = s.questions.SelectCandidates(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("select candidates below threshold: %w", err)
		}
	}

	for _, q := range candidates {
		if q.AuthorID == userID {
			continue
		}
		if exc.hasAuthor(q.AuthorID) {
			continue
		}
		if exc.hasQuestion(q.ID) {
			continue
		}
		return q, nil
	}

	s.log.DebugContext(ctx, "no eligible question found",
		"user_id", userID.String(),
		"excluded_questions", len(exc.questionIDs),
	)
	return nil, nil
}
