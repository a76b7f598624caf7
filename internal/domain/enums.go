package domain

// ModerationStatus is the lifecycle status of user-submitted content.
// It is assigned exactly once, by the moderation gateway, at submission time.
type ModerationStatus string

const (
	StatusApproved      ModerationStatus = "approved"
	StatusPendingReview ModerationStatus = "pending_review"
	StatusRejected      ModerationStatus = "rejected"
)

func (s ModerationStatus) String() string { return string(s) }

func (s ModerationStatus) IsValid() bool {
	switch s {
	case StatusApproved, StatusPendingReview, StatusRejected:
		return true
	}
	return false
}

// RewardStatus tracks the payout state of a reward record.
// Only the pending→paid transition happens after creation, and it is
// performed by the payout operator, not by this backend.
type RewardStatus string

const (
	RewardStatusPending RewardStatus = "pending"
	RewardStatusTest    RewardStatus = "test"
	RewardStatusPaid    RewardStatus = "paid"
)

func (s RewardStatus) String() string { return string(s) }

func (s RewardStatus) IsValid() bool {
	switch s {
	case RewardStatusPending, RewardStatusTest, RewardStatusPaid:
		return true
	}
	return false
}

// PoolScopeType distinguishes what a pool or reward is attached to:
// per-question pools (legacy), per-period pools (current), or a direct
// answer-unlock reward (no pool, reward records only).
type PoolScopeType string

const (
	PoolScopeQuestion PoolScopeType = "question"
	PoolScopePeriod   PoolScopeType = "period"
	PoolScopeAnswer   PoolScopeType = "answer"
)

func (t PoolScopeType) String() string { return string(t) }

func (t PoolScopeType) IsValid() bool {
	switch t {
	case PoolScopeQuestion, PoolScopePeriod, PoolScopeAnswer:
		return true
	}
	return false
}
