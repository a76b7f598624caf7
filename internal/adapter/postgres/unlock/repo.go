// Package unlock implements the question- and answer-unlock repositories
// using PostgreSQL.
package unlock

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides unlock persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new unlock repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateQuestionUnlock records a question unlock. The unique
// (question_id, unlocked_by) constraint caps unlocks at one per pair;
// a repeat purchase maps to domain.ErrAlreadyExists.
func (r *Repo) CreateQuestionUnlock(ctx context.Context, u *domain.QuestionUnlock) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO question_unlocks (id, question_id, unlocked_by, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.QuestionID, u.UnlockedBy, u.Amount, u.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "question_unlock", u.QuestionID.String())
	}
	return nil
}

// CreateAnswerUnlock records an answer unlock, one per (answer, user) pair.
func (r *Repo) CreateAnswerUnlock(ctx context.Context, u *domain.AnswerUnlock) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO answer_unlocks (id, answer_id, question_id, unlocked_by, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.AnswerID, u.QuestionID, u.UnlockedBy, u.Amount, u.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "answer_unlock", u.AnswerID.String())
	}
	return nil
}

// HasQuestionUnlock reports whether the user already unlocked the question.
func (r *Repo) HasQuestionUnlock(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM question_unlocks WHERE question_id = $1 AND unlocked_by = $2)`,
		questionID, userID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "question_unlock", questionID.String())
	}
	return exists, nil
}

// HasAnswerUnlock reports whether the user already unlocked the answer.
func (r *Repo) HasAnswerUnlock(ctx context.Context, answerID, userID uuid.UUID) (bool, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM answer_unlocks WHERE answer_id = $1 AND unlocked_by = $2)`,
		answerID, userID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "answer_unlock", answerID.String())
	}
	return exists, nil
}
