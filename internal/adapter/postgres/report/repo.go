// Package report implements the report repository using PostgreSQL.
package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new report repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create stores a question report. A missing question maps to
// domain.ErrNotFound via the foreign key.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) error {
	db := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO reports (id, question_id, reason, reported_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rep.ID, rep.QuestionID, rep.Reason, rep.ReportedBy, rep.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "report", rep.QuestionID.String())
	}
	return nil
}
