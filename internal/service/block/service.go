// Package block implements user blocking, by user id or via a question.
package block

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type blockRepo interface {
	Upsert(ctx context.Context, b *domain.BlockRelation) error
	Delete(ctx context.Context, blockerID, blockedUserID uuid.UUID) error
	List(ctx context.Context, blockerID uuid.UUID) ([]*domain.BlockRelation, error)
}

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the block business logic.
type Service struct {
	log       *slog.Logger
	blocks    blockRepo
	questions questionRepo
}

// NewService creates a new block service.
func NewService(logger *slog.Logger, blocks blockRepo, questions questionRepo) *Service {
	return &Service{
		log:       logger.With("service", "block"),
		blocks:    blocks,
		questions: questions,
	}
}
