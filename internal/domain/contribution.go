package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contribution point values. A plain answer earns PointsPerAnswer; having
// an answer selected as best earns BestAnswerBonus on top.
const (
	PointsPerAnswer = 1
	BestAnswerBonus = 5
)

// ContributionRecord aggregates one user's contribution points within one
// period. One record exists per (period, user); it is mutated additively
// only, via atomic increments. It is never decremented and never rewritten.
//
// Invariant: TotalPoints == AnswerCount*PointsPerAnswer +
// BestAnswerCount*BestAnswerBonus as long as all mutations go through the
// contribution ledger.
type ContributionRecord struct {
	Period          Period
	UserID          uuid.UUID
	TotalPoints     int64
	AnswerCount     int64
	BestAnswerCount int64
	AnswerIDs       []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
