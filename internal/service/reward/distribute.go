package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// DistributionOutcome is the soft result of a distribution attempt. Only
// infrastructure failures surface as errors; "nothing to do" cases are
// outcomes, so schedulers and retries stay quiet.
type DistributionOutcome string

const (
	OutcomeDistributed        DistributionOutcome = "distributed"
	OutcomeNoPool             DistributionOutcome = "no_pool"
	OutcomeAlreadyDistributed DistributionOutcome = "already_distributed"
	OutcomeNothingToShare     DistributionOutcome = "nothing_to_share"
)

// errAlreadyClosed aborts the distribution transaction when the locked pool
// turns out to be distributed; it is converted to a soft outcome.
var errAlreadyClosed = fmt.Errorf("pool closed by concurrent distribution: %w", domain.ErrConflict)

// DistributionResult summarizes one distribution attempt.
type DistributionResult struct {
	Outcome           DistributionOutcome
	Scope             domain.PoolScope
	PoolAmount        int64
	DistributedAmount int64
	Remainder         int64
	TotalPoints       int64
	RewardCount       int
}

// Distribute closes the scope's pool and writes the reward records, exactly
// once per pool.
//
// Per-period pools split proportionally over that period's contribution
// points, each share rounded down; the remainder stays in the platform's
// books. Per-question pools (legacy) go entirely to the question's best
// answerer.
//
// The reward writes and the pool close commit in one transaction that holds
// a row lock on the pool, and the close is additionally a check-and-set on
// distributed = false. When two triggers race, exactly one commits; the
// loser reports OutcomeAlreadyDistributed.
func (s *Service) Distribute(ctx context.Context, scope domain.PoolScope) (*DistributionResult, error) {
	pool, err := s.pools.Get(ctx, scope)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &DistributionResult{Outcome: OutcomeNoPool, Scope: scope}, nil
		}
		return nil, fmt.Errorf("get pool: %w", err)
	}
	if pool.Distributed {
		return &DistributionResult{Outcome: OutcomeAlreadyDistributed, Scope: scope}, nil
	}

	switch scope.Type {
	case domain.PoolScopePeriod:
		return s.distributePeriod(ctx, scope)
	case domain.PoolScopeQuestion:
		return s.distributeQuestion(ctx, scope)
	default:
		return nil, domain.NewValidationError("scope", "not a distributable scope")
	}
}

func (s *Service) distributePeriod(ctx context.Context, scope domain.PoolScope) (*DistributionResult, error) {
	period := domain.Period(scope.ID)
	result := &DistributionResult{Scope: scope}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		pool, err := s.pools.GetForUpdate(txCtx, scope)
		if err != nil {
			return fmt.Errorf("lock pool: %w", err)
		}
		if pool.Distributed {
			return errAlreadyClosed
		}
		result.PoolAmount = pool.PoolAmount

		contributions, err := s.contributions.ListByPeriod(txCtx, period)
		if err != nil {
			return fmt.Errorf("list contributions: %w", err)
		}

		var totalPoints int64
		for _, c := range contributions {
			totalPoints += c.TotalPoints
		}
		result.TotalPoints = totalPoints

		// An empty or pointless pool still gets closed, so the period is
		// settled and later unlock attempts conflict instead of leaking in.
		if pool.PoolAmount == 0 || totalPoints == 0 {
			result.Outcome = OutcomeNothingToShare
			return s.pools.Close(txCtx, scope, 0, totalPoints, s.cfg.TestPeriods)
		}

		now := time.Now().UTC()
		records := make([]*domain.RewardRecord, 0, len(contributions))
		var distributed int64
		for _, c := range contributions {
			share := pool.PoolAmount * c.TotalPoints / totalPoints // floor by integer division
			if share == 0 {
				continue
			}
			records = append(records, &domain.RewardRecord{
				ID:                 uuid.New(),
				Scope:              scope,
				UserID:             c.UserID,
				Amount:             share,
				ContributionPoints: c.TotalPoints,
				IsBestAnswerer:     c.BestAnswerCount > 0,
				Status:             s.rewardStatus(),
				CreatedAt:          now,
			})
			distributed += share
		}

		if err := s.rewards.CreateBatch(txCtx, records); err != nil {
			return fmt.Errorf("create reward records: %w", err)
		}
		// The pool record settles the full amount; the flooring remainder is
		// retained by the platform, not carried into a future pool.
		if err := s.pools.Close(txCtx, scope, pool.PoolAmount, totalPoints, s.cfg.TestPeriods); err != nil {
			return fmt.Errorf("close pool: %w", err)
		}

		result.Outcome = OutcomeDistributed
		result.DistributedAmount = distributed
		result.Remainder = pool.PoolAmount - distributed
		result.RewardCount = len(records)
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrConflict) {
			// Lost the race against a concurrent trigger; its commit stands.
			return &DistributionResult{Outcome: OutcomeAlreadyDistributed, Scope: scope}, nil
		}
		return nil, txErr
	}

	s.log.InfoContext(ctx, "pool distributed",
		"scope", scope.String(),
		"outcome", string(result.Outcome),
		"distributed", result.DistributedAmount,
		"remainder", result.Remainder,
		"rewards", result.RewardCount,
	)
	return result, nil
}

// distributeQuestion drains a legacy per-question pool: the whole amount
// goes to the question's best answerer. Without a best answer the pool
// stays open.
func (s *Service) distributeQuestion(ctx context.Context, scope domain.PoolScope) (*DistributionResult, error) {
	questionID, err := uuid.Parse(scope.ID)
	if err != nil {
		return nil, domain.NewValidationError("scope", "question scope id is not a uuid")
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.BestAnswerID == nil {
		return &DistributionResult{Outcome: OutcomeNothingToShare, Scope: scope}, nil
	}

	answer, err := s.answers.GetByID(ctx, *question.BestAnswerID)
	if err != nil {
		return nil, fmt.Errorf("get best answer: %w", err)
	}

	result := &DistributionResult{Scope: scope}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		pool, err := s.pools.GetForUpdate(txCtx, scope)
		if err != nil {
			return fmt.Errorf("lock pool: %w", err)
		}
		if pool.Distributed {
			return errAlreadyClosed
		}
		result.PoolAmount = pool.PoolAmount

		if pool.PoolAmount == 0 {
			result.Outcome = OutcomeNothingToShare
			return s.pools.Close(txCtx, scope, 0, 0, s.cfg.TestPeriods)
		}

		record := &domain.RewardRecord{
			ID:             uuid.New(),
			Scope:          scope,
			UserID:         answer.AuthorID,
			Amount:         pool.PoolAmount,
			IsBestAnswerer: true,
			Status:         s.rewardStatus(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.rewards.Create(txCtx, record); err != nil {
			return fmt.Errorf("create reward record: %w", err)
		}
		if err := s.pools.Close(txCtx, scope, pool.PoolAmount, 0, s.cfg.TestPeriods); err != nil {
			return fmt.Errorf("close pool: %w", err)
		}

		result.Outcome = OutcomeDistributed
		result.DistributedAmount = pool.PoolAmount
		result.RewardCount = 1
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrConflict) {
			return &DistributionResult{Outcome: OutcomeAlreadyDistributed, Scope: scope}, nil
		}
		return nil, txErr
	}

	if result.Outcome == OutcomeDistributed {
		s.log.InfoContext(ctx, "question pool drained",
			"scope", scope.String(),
			"amount", result.DistributedAmount,
			"user_id", answer.AuthorID.String(),
		)
	}
	return result, nil
}
