// Package contribution implements the contribution-ledger repository using
// PostgreSQL.
package contribution

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides contribution-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contribution repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordAnswerSQL = `
INSERT INTO contribution_records (period, user_id, total_points, answer_count, best_answer_count, answer_ids)
VALUES ($1, $2, $3, 1, 0, ARRAY[$4]::uuid[])
ON CONFLICT (period, user_id) DO UPDATE SET
    total_points = contribution_records.total_points + $3,
    answer_count = contribution_records.answer_count + 1,
    answer_ids   = array_append(contribution_records.answer_ids, $4),
    updated_at   = now()
WHERE NOT ($4 = ANY(contribution_records.answer_ids))`

// RecordAnswer credits one answer in the user's record for the period.
// Idempotent per answer id: replaying the same answer changes nothing,
// so callers may retry without double counting.
func (r *Repo) RecordAnswer(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, recordAnswerSQL,
		period, userID, int64(domain.PointsPerAnswer), answerID)
	if err != nil {
		return postgres.MapError(err, "contribution_record", userID.String())
	}
	return nil
}

const recordBestAnswerSQL = `
INSERT INTO contribution_records (period, user_id, total_points, answer_count, best_answer_count, answer_ids)
VALUES ($1, $2, $3, 0, 1, '{}')
ON CONFLICT (period, user_id) DO UPDATE SET
    total_points      = contribution_records.total_points + $3,
    best_answer_count = contribution_records.best_answer_count + 1,
    updated_at        = now()`

// RecordBestAnswer credits the best-answer bonus in the user's record for
// the period. Idempotency is the caller's concern: the at-most-one best
// answer per question invariant upstream guarantees at most one bonus per
// question.
func (r *Repo) RecordBestAnswer(ctx context.Context, period domain.Period, userID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, recordBestAnswerSQL,
		period, userID, int64(domain.BestAnswerBonus))
	if err != nil {
		return postgres.MapError(err, "contribution_record", userID.String())
	}
	return nil
}

const contributionColumns = `period, user_id, total_points, answer_count, best_answer_count, answer_ids, created_at, updated_at`

// Get returns one user's record for the period.
// Returns domain.ErrNotFound if the user has no contributions in it.
func (r *Repo) Get(ctx context.Context, period domain.Period, userID uuid.UUID) (*domain.ContributionRecord, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.ContributionRecord
	err := db.QueryRow(ctx,
		`SELECT `+contributionColumns+` FROM contribution_records WHERE period = $1 AND user_id = $2`,
		period, userID).
		Scan(&c.Period, &c.UserID, &c.TotalPoints, &c.AnswerCount,
			&c.BestAnswerCount, &c.AnswerIDs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "contribution_record", userID.String())
	}
	return &c, nil
}

// ListByPeriod returns every contribution record of the period.
// Returns an empty slice for a period with no activity.
func (r *Repo) ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.ContributionRecord, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+contributionColumns+` FROM contribution_records WHERE period = $1 ORDER BY user_id`,
		period)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContributionRecord
	for rows.Next() {
		var c domain.ContributionRecord
		if err := rows.Scan(&c.Period, &c.UserID, &c.TotalPoints, &c.AnswerCount,
			&c.BestAnswerCount, &c.AnswerIDs, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
