// Package moderation implements the content moderation gateway. Every piece
// of user-submitted text passes through it exactly once, at submission time,
// and comes out with a moderation status and an audit snapshot.
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type toxicityScorer interface {
	Score(ctx context.Context, text string) (provider.ToxicityResult, error)
}

type generativeJudge interface {
	Generate(ctx context.Context, instruction string, history []provider.JudgeMessage) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service combines the toxicity scorer and the generative judge into one
// decision. Both providers are consulted on every call; the stricter outcome
// wins.
type Service struct {
	log    *slog.Logger
	scorer toxicityScorer
	judge  generativeJudge
	cfg    config.ModerationConfig
}

// NewService creates a new moderation service.
func NewService(logger *slog.Logger, scorer toxicityScorer, judge generativeJudge, cfg config.ModerationConfig) *Service {
	return &Service{
		log:    logger.With("service", "moderation"),
		scorer: scorer,
		judge:  judge,
		cfg:    cfg,
	}
}

const judgeInstruction = `You are a content moderator for a Q&A community.
Classify the last message; any earlier message is context only.
Reply with exactly one word:
NG if it must be removed (harassment, threats, doxxing, spam),
REVIEW if a human should look at it,
OK otherwise.`

// Review moderates one piece of text. It returns the stored audit snapshot
// and the resulting status. contextText may carry surrounding content (the
// question an answer replies to); it is shown to the judge as a prior turn
// but is not scored itself.
//
// If either provider fails or returns something unusable, the whole call
// fails with domain.ErrModerationUnavailable. Unscreened content must never
// reach the store, so there is no fallback to approved.
func (s *Service) Review(ctx context.Context, text, contextText string) (domain.ModerationResult, domain.ModerationStatus, error) {
	scores, err := s.scorer.Score(ctx, text)
	if err != nil {
		s.log.WarnContext(ctx, "toxicity scorer failed", slog.String("error", err.Error()))
		return domain.ModerationResult{}, "", fmt.Errorf("score text: %w", domain.ErrModerationUnavailable)
	}

	history := make([]provider.JudgeMessage, 0, 2)
	if contextText != "" {
		history = append(history, provider.JudgeMessage{Role: provider.JudgeRoleUser, Text: contextText})
	}
	history = append(history, provider.JudgeMessage{Role: provider.JudgeRoleUser, Text: text})

	verdict, err := s.judge.Generate(ctx, judgeInstruction, history)
	if err != nil {
		s.log.WarnContext(ctx, "generative judge failed", slog.String("error", err.Error()))
		return domain.ModerationResult{}, "", fmt.Errorf("judge text: %w", domain.ErrModerationUnavailable)
	}

	result := domain.ModerationResult{
		Toxicity:       scores.Toxicity,
		SevereToxicity: scores.SevereToxicity,
		Insult:         scores.Insult,
		Profanity:      scores.Profanity,
		Threat:         scores.Threat,
		IdentityAttack: scores.IdentityAttack,
		AIVerdict:      verdict,
	}

	status := combine(s.statusFromScores(result), classifyVerdict(verdict))

	s.log.InfoContext(ctx, "moderation decision",
		slog.String("status", status.String()),
		slog.Float64("max_score", result.MaxScore()),
	)

	return result, status, nil
}

// statusFromScores applies the score thresholds. Both comparisons are
// strict: a score exactly at the reject threshold goes to review, exactly at
// the review threshold is approved.
func (s *Service) statusFromScores(r domain.ModerationResult) domain.ModerationStatus {
	max := r.MaxScore()
	switch {
	case max > s.cfg.RejectThreshold:
		return domain.StatusRejected
	case max > s.cfg.ReviewThreshold:
		return domain.StatusPendingReview
	default:
		return domain.StatusApproved
	}
}

// combine returns the stricter of two statuses.
func combine(a, b domain.ModerationStatus) domain.ModerationStatus {
	if severity(a) >= severity(b) {
		return a
	}
	return b
}

func severity(s domain.ModerationStatus) int {
	switch s {
	case domain.StatusRejected:
		return 2
	case domain.StatusPendingReview:
		return 1
	default:
		return 0
	}
}
