// Package favorite implements the favorite-question repository using PostgreSQL.
package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
)

// Repo provides favorite-question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new favorite repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Add marks a question as favorited. Idempotent.
func (r *Repo) Add(ctx context.Context, userID, questionID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO favorite_questions (user_id, question_id, created_at)
		 VALUES ($1, $2, $3) ON CONFLICT (user_id, question_id) DO NOTHING`,
		userID, questionID, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "favorite", questionID.String())
	}
	return nil
}

// Remove unmarks a favorited question. Idempotent.
func (r *Repo) Remove(ctx context.Context, userID, questionID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`DELETE FROM favorite_questions WHERE user_id = $1 AND question_id = $2`,
		userID, questionID)
	if err != nil {
		return postgres.MapError(err, "favorite", questionID.String())
	}
	return nil
}

// ListQuestionIDs returns the ids of the user's favorited questions.
// Returns an empty slice when nothing is favorited.
func (r *Repo) ListQuestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT question_id FROM favorite_questions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite question ids: %w", err)
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
