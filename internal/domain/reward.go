package domain

import (
	"time"

	"github.com/google/uuid"
)

// RewardRecord is the append-only output of reward distribution (or of a
// direct answer-unlock reward). After creation only the pending→paid status
// transition is allowed, and it happens outside this backend.
type RewardRecord struct {
	ID                 uuid.UUID
	Scope              PoolScope
	UserID             uuid.UUID
	Amount             int64
	ContributionPoints int64
	IsBestAnswerer     bool
	Status             RewardStatus
	CreatedAt          time.Time
	PaidAt             *time.Time
}
