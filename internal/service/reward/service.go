// Package reward implements the monetary side of the system: the
// contribution ledger, pool accumulation from unlocks, and reward
// distribution.
package reward

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type contributionRepo interface {
	RecordAnswer(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error
	RecordBestAnswer(ctx context.Context, period domain.Period, userID uuid.UUID) error
	ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.ContributionRecord, error)
}

type poolRepo interface {
	AddFunds(ctx context.Context, scope domain.PoolScope, amount int64) error
	Get(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error)
	GetForUpdate(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error)
	Close(ctx context.Context, scope domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error
}

type unlockRepo interface {
	CreateQuestionUnlock(ctx context.Context, u *domain.QuestionUnlock) error
	CreateAnswerUnlock(ctx context.Context, u *domain.AnswerUnlock) error
	HasQuestionUnlock(ctx context.Context, questionID, userID uuid.UUID) (bool, error)
	HasAnswerUnlock(ctx context.Context, answerID, userID uuid.UUID) (bool, error)
}

type rewardRepo interface {
	Create(ctx context.Context, rec *domain.RewardRecord) error
	CreateBatch(ctx context.Context, recs []*domain.RewardRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RewardRecord, error)
}

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
}

type answerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the reward business logic.
type Service struct {
	log           *slog.Logger
	contributions contributionRepo
	pools         poolRepo
	unlocks       unlockRepo
	rewards       rewardRepo
	questions     questionRepo
	answers       answerRepo
	tx            txManager
	cfg           config.RewardsConfig
}

// NewService creates a new reward service.
func NewService(
	logger *slog.Logger,
	contributions contributionRepo,
	pools poolRepo,
	unlocks unlockRepo,
	rewards rewardRepo,
	questions questionRepo,
	answers answerRepo,
	tx txManager,
	cfg config.RewardsConfig,
) *Service {
	return &Service{
		log:           logger.With("service", "reward"),
		contributions: contributions,
		pools:         pools,
		unlocks:       unlocks,
		rewards:       rewards,
		questions:     questions,
		answers:       answers,
		tx:            tx,
		cfg:           cfg,
	}
}

// rewardStatus picks the initial status of new reward records. Test mode
// marks them test so the payout operator skips them.
func (s *Service) rewardStatus() domain.RewardStatus {
	if s.cfg.TestPeriods {
		return domain.RewardStatusTest
	}
	return domain.RewardStatusPending
}
