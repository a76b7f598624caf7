// Package question implements question submission, random selection,
// listing, favorites and reports.
package question

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type questionRepo interface {
	Create(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Question, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Question, error)
	SelectCandidates(ctx context.Context, f domain.CandidateFilter) ([]*domain.Question, error)
}

type answerRepo interface {
	ListAnsweredQuestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type blockRepo interface {
	ListBlockedIDs(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error)
}

type favoriteRepo interface {
	Add(ctx context.Context, userID, questionID uuid.UUID) error
	Remove(ctx context.Context, userID, questionID uuid.UUID) error
	ListQuestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type reportRepo interface {
	Create(ctx context.Context, rep *domain.Report) error
}

type moderator interface {
	Review(ctx context.Context, text, contextText string) (domain.ModerationResult, domain.ModerationStatus, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the question business logic.
type Service struct {
	log        *slog.Logger
	questions  questionRepo
	answers    answerRepo
	blocks     blockRepo
	favorites  favoriteRepo
	reports    reportRepo
	moderation moderator
	cfg        config.SelectionConfig

	// randFloat yields uniform variates in [0,1) for random keys and
	// selection thresholds. Replaced in tests.
	randFloat func() float64
}

// NewService creates a new question service.
func NewService(
	logger *slog.Logger,
	questions questionRepo,
	answers answerRepo,
	blocks blockRepo,
	favorites favoriteRepo,
	reports reportRepo,
	moderation moderator,
	cfg config.SelectionConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "question"),
		questions:  questions,
		answers:    answers,
		blocks:     blocks,
		favorites:  favorites,
		reports:    reports,
		moderation: moderation,
		cfg:        cfg,
		randFloat:  rand.Float64,
	}
}
