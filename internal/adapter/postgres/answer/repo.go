// Package answer implements the answer repository using PostgreSQL.
package answer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides answer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const answerColumns = `id, question_id, author_id, text, status, is_best_answer,
	toxicity, severe_toxicity, insult, profanity, threat, identity_attack, ai_verdict, created_at`

func scanAnswer(row pgx.Row) (*domain.Answer, error) {
	var a domain.Answer
	err := row.Scan(
		&a.ID, &a.QuestionID, &a.AuthorID, &a.Text, &a.Status, &a.IsBestAnswer,
		&a.Moderation.Toxicity, &a.Moderation.SevereToxicity, &a.Moderation.Insult,
		&a.Moderation.Profanity, &a.Moderation.Threat, &a.Moderation.IdentityAttack,
		&a.Moderation.AIVerdict, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const createAnswerSQL = `
INSERT INTO answers (` + answerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Create inserts a new answer. The unique (question_id, author_id)
// constraint enforces one answer per user per question;
// a duplicate maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a *domain.Answer) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, createAnswerSQL,
		a.ID, a.QuestionID, a.AuthorID, a.Text, a.Status, a.IsBestAnswer,
		a.Moderation.Toxicity, a.Moderation.SevereToxicity, a.Moderation.Insult,
		a.Moderation.Profanity, a.Moderation.Threat, a.Moderation.IdentityAttack,
		a.Moderation.AIVerdict, a.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "answer", a.ID.String())
	}
	return nil
}

// GetByID returns an answer by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAnswer(db.QueryRow(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "answer", id.String())
	}
	return a, nil
}

// ListByQuestion returns all answers to a question, newest first.
// Visibility filtering (own vs approved-others) happens in the service.
func (r *Repo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE question_id = $1 ORDER BY created_at DESC`,
		questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAnsweredQuestionIDs returns the ids of all questions the user has
// answered. Returns an empty slice for a user with no answers.
func (r *Repo) ListAnsweredQuestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT question_id FROM answers WHERE author_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list answered question ids: %w", err)
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

// MarkBest flags an answer as the best answer of its question. The partial
// unique index on (question_id) WHERE is_best_answer backs the at-most-one
// invariant; a second flag on the same question maps to
// domain.ErrAlreadyExists.
func (r *Repo) MarkBest(ctx context.Context, answerID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := db.Exec(ctx,
		`UPDATE answers SET is_best_answer = true WHERE id = $1`, answerID)
	if err != nil {
		return postgres.MapError(err, "answer", answerID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("answer %s: %w", answerID, domain.ErrNotFound)
	}
	return nil
}
