// Package answer implements answer submission, visibility-scoped listing,
// best-answer selection and the contribution side effects of both.
package answer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type answerRepo interface {
	Create(ctx context.Context, a *domain.Answer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)
	MarkBest(ctx context.Context, answerID uuid.UUID) error
}

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	SetBestAnswer(ctx context.Context, questionID, answerID uuid.UUID) error
}

type contributionLedger interface {
	RecordAnswer(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error
	RecordBestAnswerBonus(ctx context.Context, period domain.Period, userID uuid.UUID) error
}

type poolDistributor interface {
	Distribute(ctx context.Context, scope domain.PoolScope) (*reward.DistributionResult, error)
}

type moderator interface {
	Review(ctx context.Context, text, contextText string) (domain.ModerationResult, domain.ModerationStatus, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the answer business logic.
type Service struct {
	log         *slog.Logger
	answers     answerRepo
	questions   questionRepo
	ledger      contributionLedger
	distributor poolDistributor
	moderation  moderator
	tx          txManager
}

// NewService creates a new answer service.
func NewService(
	logger *slog.Logger,
	answers answerRepo,
	questions questionRepo,
	ledger contributionLedger,
	distributor poolDistributor,
	moderation moderator,
	tx txManager,
) *Service {
	return &Service{
		log:         logger.With("service", "answer"),
		answers:     answers,
		questions:   questions,
		ledger:      ledger,
		distributor: distributor,
		moderation:  moderation,
		tx:          tx,
	}
}
