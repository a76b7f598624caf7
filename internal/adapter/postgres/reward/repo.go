// Package reward implements the reward-record repository using PostgreSQL.
package reward

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides reward-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reward repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const rewardColumns = `id, scope_type, scope_id, user_id, amount, contribution_points,
	is_best_answerer, status, created_at, paid_at`

const createRewardSQL = `
INSERT INTO reward_records (` + rewardColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Create appends one reward record.
func (r *Repo) Create(ctx context.Context, rec *domain.RewardRecord) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, createRewardSQL,
		rec.ID, rec.Scope.Type, rec.Scope.ID, rec.UserID, rec.Amount,
		rec.ContributionPoints, rec.IsBestAnswerer, rec.Status, rec.CreatedAt, rec.PaidAt)
	if err != nil {
		return postgres.MapError(err, "reward_record", rec.ID.String())
	}
	return nil
}

// CreateBatch appends a set of reward records in one round trip.
func (r *Repo) CreateBatch(ctx context.Context, recs []*domain.RewardRecord) error {
	if len(recs) == 0 {
		return nil
	}
	db := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(createRewardSQL,
			rec.ID, rec.Scope.Type, rec.Scope.ID, rec.UserID, rec.Amount,
			rec.ContributionPoints, rec.IsBestAnswerer, rec.Status, rec.CreatedAt, rec.PaidAt)
	}

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	for range recs {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "reward_record", "batch")
		}
	}
	return nil
}

func collectRewards(rows pgx.Rows) ([]*domain.RewardRecord, error) {
	defer rows.Close()
	var out []*domain.RewardRecord
	for rows.Next() {
		var rec domain.RewardRecord
		if err := rows.Scan(&rec.ID, &rec.Scope.Type, &rec.Scope.ID, &rec.UserID,
			&rec.Amount, &rec.ContributionPoints, &rec.IsBestAnswerer, &rec.Status,
			&rec.CreatedAt, &rec.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ListByUser returns the user's reward records, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RewardRecord, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+rewardColumns+` FROM reward_records WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list rewards by user: %w", err)
	}
	return collectRewards(rows)
}

// ListByScope returns the reward records written for one pool.
func (r *Repo) ListByScope(ctx context.Context, scope domain.PoolScope) ([]*domain.RewardRecord, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+rewardColumns+` FROM reward_records WHERE scope_type = $1 AND scope_id = $2 ORDER BY created_at`,
		scope.Type, scope.ID)
	if err != nil {
		return nil, fmt.Errorf("list rewards by scope: %w", err)
	}
	return collectRewards(rows)
}
