package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

type rewardService interface {
	UnlockQuestion(ctx context.Context, questionID uuid.UUID) (*reward.QuestionUnlockResult, error)
	UnlockAnswer(ctx context.Context, answerID uuid.UUID) (*reward.AnswerUnlockResult, error)
	ListMyRewards(ctx context.Context) ([]*domain.RewardRecord, error)
}

// RewardHandler serves unlock and reward REST endpoints.
type RewardHandler struct {
	rewards rewardService
	log     *slog.Logger
}

// NewRewardHandler creates a RewardHandler.
func NewRewardHandler(rewards rewardService, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{
		rewards: rewards,
		log:     logger.With("handler", "reward"),
	}
}

type unlockQuestionResponse struct {
	UnlockID   string `json:"unlock_id"`
	Amount     int64  `json:"amount"`
	PoolAmount int64  `json:"pool_amount"`
	Period     string `json:"period"`
}

// UnlockQuestion records a paid unlock of a question's answers and funds
// the current period pool. A second unlock of the same question by the
// same user is a conflict.
// POST /questions/{id}/unlock
func (h *RewardHandler) UnlockQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.rewards.UnlockQuestion(r.Context(), questionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, unlockQuestionResponse{
		UnlockID:   result.UnlockID.String(),
		Amount:     result.Amount,
		PoolAmount: result.PoolAmount,
		Period:     string(result.Period),
	})
}

type unlockAnswerResponse struct {
	UnlockID     string `json:"unlock_id"`
	Amount       int64  `json:"amount"`
	RewardAmount int64  `json:"reward_amount"`
}

// UnlockAnswer records a paid unlock of a single answer and grants the
// answerer a direct reward.
// POST /answers/{id}/unlock
func (h *RewardHandler) UnlockAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.rewards.UnlockAnswer(r.Context(), answerID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, unlockAnswerResponse{
		UnlockID:     result.UnlockID.String(),
		Amount:       result.Amount,
		RewardAmount: result.RewardAmount,
	})
}

type rewardRecordResponse struct {
	ID                 string  `json:"id"`
	ScopeType          string  `json:"scope_type"`
	ScopeID            string  `json:"scope_id"`
	Amount             int64   `json:"amount"`
	ContributionPoints int64   `json:"contribution_points"`
	IsBestAnswerer     bool    `json:"is_best_answerer"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	PaidAt             *string `json:"paid_at,omitempty"`
}

type rewardListResponse struct {
	Rewards []rewardRecordResponse `json:"rewards"`
}

// ListMine returns the caller's reward records, newest first.
// GET /rewards
func (h *RewardHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	records, err := h.rewards.ListMyRewards(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := rewardListResponse{Rewards: make([]rewardRecordResponse, 0, len(records))}
	for _, rec := range records {
		item := rewardRecordResponse{
			ID:                 rec.ID.String(),
			ScopeType:          string(rec.Scope.Type),
			ScopeID:            rec.Scope.ID,
			Amount:             rec.Amount,
			ContributionPoints: rec.ContributionPoints,
			IsBestAnswerer:     rec.IsBestAnswerer,
			Status:             string(rec.Status),
			CreatedAt:          rec.CreatedAt.UTC().Format(time.RFC3339),
		}
		if rec.PaidAt != nil {
			paidAt := rec.PaidAt.UTC().Format(time.RFC3339)
			item.PaidAt = &paidAt
		}
		resp.Rewards = append(resp.Rewards, item)
	}
	writeJSON(w, http.StatusOK, resp)
}
