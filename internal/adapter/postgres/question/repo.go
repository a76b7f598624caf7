// Package question implements the question repository using PostgreSQL.
package question

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new question repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const questionColumns = `id, text, author_id, status, random_key, best_answer_id,
	toxicity, severe_toxicity, insult, profanity, threat, identity_attack, ai_verdict, created_at`

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var q domain.Question
	err := row.Scan(
		&q.ID, &q.Text, &q.AuthorID, &q.Status, &q.RandomKey, &q.BestAnswerID,
		&q.Moderation.Toxicity, &q.Moderation.SevereToxicity, &q.Moderation.Insult,
		&q.Moderation.Profanity, &q.Moderation.Threat, &q.Moderation.IdentityAttack,
		&q.Moderation.AIVerdict, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func collectQuestions(rows pgx.Rows) ([]*domain.Question, error) {
	defer rows.Close()
	var out []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

const createQuestionSQL = `
INSERT INTO questions (` + questionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Create inserts a new question.
func (r *Repo) Create(ctx context.Context, q *domain.Question) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx, createQuestionSQL,
		q.ID, q.Text, q.AuthorID, q.Status, q.RandomKey, q.BestAnswerID,
		q.Moderation.Toxicity, q.Moderation.SevereToxicity, q.Moderation.Insult,
		q.Moderation.Profanity, q.Moderation.Threat, q.Moderation.IdentityAttack,
		q.Moderation.AIVerdict, q.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "question", q.ID.String())
	}
	return nil
}

// GetByID returns a question by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	q, err := scanQuestion(db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "question", id.String())
	}
	return q, nil
}

// ListByAuthor returns the author's questions, newest first.
func (r *Repo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Question, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE author_id = $1 ORDER BY created_at DESC`,
		authorID)
	if err != nil {
		return nil, fmt.Errorf("list questions by author: %w", err)
	}
	return collectQuestions(rows)
}

// ListByIDs returns the questions with the given ids, newest first.
// Missing ids are silently skipped.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1) ORDER BY created_at DESC`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("list questions by ids: %w", err)
	}
	return collectQuestions(rows)
}

// SetBestAnswer records the best answer on a question, once.
// Returns domain.ErrConflict if a best answer was already selected.
func (r *Repo) SetBestAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := db.Exec(ctx,
		`UPDATE questions SET best_answer_id = $2 WHERE id = $1 AND best_answer_id IS NULL`,
		questionID, answerID)
	if err != nil {
		return postgres.MapError(err, "question", questionID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s best answer: %w", questionID, domain.ErrConflict)
	}
	return nil
}

// SelectCandidates returns an approved-question batch around the random
// threshold, ascending by random_key.
func (r *Repo) SelectCandidates(ctx context.Context, f domain.CandidateFilter) ([]*domain.Question, error) {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Select(
		"id", "text", "author_id", "status", "random_key", "best_answer_id",
		"toxicity", "severe_toxicity", "insult", "profanity", "threat", "identity_attack",
		"ai_verdict", "created_at",
	).
		From("questions").
		Where(sq.Eq{"status": domain.StatusApproved}).
		Where(sq.NotEq{"author_id": f.RequesterID}).
		OrderBy("random_key ASC").
		Limit(uint64(f.Limit)).
		PlaceholderFormat(sq.Dollar)

	if f.Above {
		b = b.Where(sq.GtOrEq{"random_key": f.Threshold})
	} else {
		b = b.Where(sq.Lt{"random_key": f.Threshold})
	}
	if len(f.ExcludedAuthorIDs) > 0 {
		b = b.Where("NOT (author_id = ANY(?))", f.ExcludedAuthorIDs)
	}
	if len(f.ExcludedQuestionIDs) > 0 {
		b = b.Where("NOT (id = ANY(?))", f.ExcludedQuestionIDs)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	return collectQuestions(rows)
}
