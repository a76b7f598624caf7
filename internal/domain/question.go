package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModerationResult is the verdict snapshot stored alongside moderated
// content, for audit. Scores are Perspective-style attribute scores in
// [0,1]; AIVerdict is the raw free-text response of the generative judge.
type ModerationResult struct {
	Toxicity       float64
	SevereToxicity float64
	Insult         float64
	Profanity      float64
	Threat         float64
	IdentityAttack float64
	AIVerdict      string
}

// MaxScore returns the highest of the attribute scores.
func (m ModerationResult) MaxScore() float64 {
	max := m.Toxicity
	for _, s := range []float64{m.SevereToxicity, m.Insult, m.Profanity, m.Threat, m.IdentityAttack} {
		if s > max {
			max = s
		}
	}
	return max
}

// Question is a user-submitted question.
//
// RandomKey is an independent uniform variate in [0,1) assigned at creation.
// Range queries around a random threshold approximate uniform sampling over
// the whole collection without a full scan.
//
// BestAnswerID is set at most once and is immutable afterwards.
type Question struct {
	ID           uuid.UUID
	Text         string
	AuthorID     uuid.UUID
	Status       ModerationStatus
	RandomKey    float64
	BestAnswerID *uuid.UUID
	Moderation   ModerationResult
	CreatedAt    time.Time
}

// CandidateFilter bounds one direction of the random-key scan used by
// question selection. ExcludedAuthorIDs and ExcludedQuestionIDs must already
// be truncated to the store's not-in cap by the caller; the exact filtering
// over the full exclusion set happens in memory in the service.
type CandidateFilter struct {
	Threshold           float64
	Above               bool // random_key >= Threshold when true, < otherwise
	RequesterID         uuid.UUID
	ExcludedAuthorIDs   []uuid.UUID
	ExcludedQuestionIDs []uuid.UUID
	Limit               int
}

// FavoriteQuestion marks a question a user has favorited. Favorited
// questions are excluded from that user's random question feed.
type FavoriteQuestion struct {
	UserID     uuid.UUID
	QuestionID uuid.UUID
	CreatedAt  time.Time
}

// Report is a user-filed report against a question.
type Report struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	Reason     string
	ReportedBy uuid.UUID
	CreatedAt  time.Time
}
