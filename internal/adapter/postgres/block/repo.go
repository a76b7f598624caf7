// Package block implements the block-relation repository using PostgreSQL.
package block

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides block-relation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new block repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertBlockSQL = `
INSERT INTO block_relations (blocker_id, blocked_user_id, origin_question_id, question_text, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (blocker_id, blocked_user_id) DO NOTHING`

// Upsert stores a block relation. Blocking an already-blocked user is a
// no-op, not an error (the original relation, including its origin
// question, is kept).
func (r *Repo) Upsert(ctx context.Context, b *domain.BlockRelation) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, upsertBlockSQL,
		b.BlockerID, b.BlockedUserID, b.OriginQuestionID, b.QuestionText, b.Reason, b.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "block_relation", b.BlockedUserID.String())
	}
	return nil
}

// Delete removes a block relation. Idempotent: deleting an absent relation
// succeeds.
func (r *Repo) Delete(ctx context.Context, blockerID, blockedUserID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`DELETE FROM block_relations WHERE blocker_id = $1 AND blocked_user_id = $2`,
		blockerID, blockedUserID)
	if err != nil {
		return postgres.MapError(err, "block_relation", blockedUserID.String())
	}
	return nil
}

// ListBlockedIDs returns the ids of all users blocked by blockerID.
// Returns an empty slice when the user has blocked nobody.
func (r *Repo) ListBlockedIDs(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT blocked_user_id FROM block_relations WHERE blocker_id = $1`, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list blocked ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns the user's block relations, newest first.
func (r *Repo) List(ctx context.Context, blockerID uuid.UUID) ([]*domain.BlockRelation, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT blocker_id, blocked_user_id, origin_question_id, question_text, reason, created_at
		 FROM block_relations WHERE blocker_id = $1 ORDER BY created_at DESC`, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list block relations: %w", err)
	}
	defer rows.Close()

	var out []*domain.BlockRelation
	for rows.Next() {
		var b domain.BlockRelation
		if err := rows.Scan(&b.BlockerID, &b.BlockedUserID, &b.OriginQuestionID,
			&b.QuestionText, &b.Reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
