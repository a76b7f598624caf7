package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PoolScope addresses one reward pool: either a single question (legacy
// model) or a calendar period (current model).
type PoolScope struct {
	Type PoolScopeType
	ID   string
}

// QuestionScope returns the scope of a per-question pool.
func QuestionScope(questionID uuid.UUID) PoolScope {
	return PoolScope{Type: PoolScopeQuestion, ID: questionID.String()}
}

// PeriodScope returns the scope of a per-period pool.
func PeriodScope(p Period) PoolScope {
	return PoolScope{Type: PoolScopePeriod, ID: string(p)}
}

// AnswerScope returns the scope used on direct answer-unlock reward records.
// No pool ever exists under this scope.
func AnswerScope(answerID uuid.UUID) PoolScope {
	return PoolScope{Type: PoolScopeAnswer, ID: answerID.String()}
}

func (s PoolScope) String() string {
	return fmt.Sprintf("%s:%s", s.Type, s.ID)
}

// RewardPool accumulates unlock revenue for later distribution.
//
// State machine: open (Distributed=false) → closed (Distributed=true),
// one-way. Once closed, PoolAmount and the distribution fields are frozen;
// neither further accumulation nor re-distribution is permitted.
type RewardPool struct {
	Scope             PoolScope
	PoolAmount        int64
	UnlockCount       int64
	Distributed       bool
	DistributedAmount int64
	TotalPoints       int64
	DistributedAt     *time.Time
	IsTest            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
