// Package rewardpool implements the reward-pool repository using PostgreSQL.
package rewardpool

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides reward-pool persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reward-pool repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const addFundsSQL = `
INSERT INTO reward_pools (scope_type, scope_id, pool_amount, unlock_count)
VALUES ($1, $2, $3, 1)
ON CONFLICT (scope_type, scope_id) DO UPDATE SET
    pool_amount  = reward_pools.pool_amount + $3,
    unlock_count = reward_pools.unlock_count + 1,
    updated_at   = now()
WHERE reward_pools.distributed = false`

// AddFunds accumulates one unlock's share into the pool, creating the pool
// on first use. Returns domain.ErrConflict when the pool has already been
// distributed: funds must never flow into a closed pool.
func (r *Repo) AddFunds(ctx context.Context, scope domain.PoolScope, amount int64) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := db.Exec(ctx, addFundsSQL, scope.Type, scope.ID, amount)
	if err != nil {
		return postgres.MapError(err, "reward_pool", scope.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reward pool %s already distributed: %w", scope, domain.ErrConflict)
	}
	return nil
}

const poolColumns = `scope_type, scope_id, pool_amount, unlock_count, distributed,
	distributed_amount, total_points, distributed_at, is_test, created_at, updated_at`

func (r *Repo) scanPool(ctx context.Context, query string, args ...any) (*domain.RewardPool, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.RewardPool
	err := db.QueryRow(ctx, query, args...).Scan(
		&p.Scope.Type, &p.Scope.ID, &p.PoolAmount, &p.UnlockCount, &p.Distributed,
		&p.DistributedAmount, &p.TotalPoints, &p.DistributedAt, &p.IsTest,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the pool for the scope.
// Returns domain.ErrNotFound if no unlock ever funded it.
func (r *Repo) Get(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
	p, err := r.scanPool(ctx,
		`SELECT `+poolColumns+` FROM reward_pools WHERE scope_type = $1 AND scope_id = $2`,
		scope.Type, scope.ID)
	if err != nil {
		return nil, postgres.MapError(err, "reward_pool", scope.String())
	}
	return p, nil
}

// GetForUpdate returns the pool with a row lock held for the rest of the
// transaction. Must run inside a transaction started by the tx manager.
func (r *Repo) GetForUpdate(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
	p, err := r.scanPool(ctx,
		`SELECT `+poolColumns+` FROM reward_pools WHERE scope_type = $1 AND scope_id = $2 FOR UPDATE`,
		scope.Type, scope.ID)
	if err != nil {
		return nil, postgres.MapError(err, "reward_pool", scope.String())
	}
	return p, nil
}

const closePoolSQL = `
UPDATE reward_pools SET
    distributed        = true,
    distributed_amount = $3,
    total_points       = $4,
    is_test            = $5,
    distributed_at     = now(),
    updated_at         = now()
WHERE scope_type = $1 AND scope_id = $2 AND distributed = false`

// Close marks the pool distributed and freezes the distribution totals.
// The distributed = false guard makes the transition one-way: a second
// close attempt affects zero rows and maps to domain.ErrConflict, which is
// how concurrent distributions stay exactly-once.
func (r *Repo) Close(ctx context.Context, scope domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := db.Exec(ctx, closePoolSQL,
		scope.Type, scope.ID, distributedAmount, totalPoints, isTest)
	if err != nil {
		return postgres.MapError(err, "reward_pool", scope.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reward pool %s already distributed: %w", scope, domain.ErrConflict)
	}
	return nil
}
