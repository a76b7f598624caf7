package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/answer"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

type answerService interface {
	Submit(ctx context.Context, input answer.SubmitInput) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)
	SelectBest(ctx context.Context, questionID, answerID uuid.UUID) (*answer.BestAnswerResult, error)
}

// AnswerHandler serves answer REST endpoints.
type AnswerHandler struct {
	answers answerService
	log     *slog.Logger
}

// NewAnswerHandler creates an AnswerHandler.
func NewAnswerHandler(answers answerService, logger *slog.Logger) *AnswerHandler {
	return &AnswerHandler{
		answers: answers,
		log:     logger.With("handler", "answer"),
	}
}

type answerResponse struct {
	ID           string `json:"id"`
	QuestionID   string `json:"question_id"`
	AuthorID     string `json:"author_id"`
	Text         string `json:"text"`
	Status       string `json:"status"`
	IsBestAnswer bool   `json:"is_best_answer"`
	CreatedAt    string `json:"created_at"`
}

func toAnswerResponse(a *domain.Answer) answerResponse {
	return answerResponse{
		ID:           a.ID.String(),
		QuestionID:   a.QuestionID.String(),
		AuthorID:     a.AuthorID.String(),
		Text:         a.Text,
		Status:       string(a.Status),
		IsBestAnswer: a.IsBestAnswer,
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type submitAnswerRequest struct {
	Text string `json:"text"`
}

type submitAnswerResponse struct {
	AnswerID string `json:"answer_id"`
	Status   string `json:"status"`
}

// Submit creates a new answer after moderation. An approved answer earns
// the answerer a contribution point for the current period.
// POST /questions/{id}/answers
func (h *AnswerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req submitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.answers.Submit(r.Context(), answer.SubmitInput{
		QuestionID: questionID,
		Text:       req.Text,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitAnswerResponse{
		AnswerID: a.ID.String(),
		Status:   string(a.Status),
	})
}

type answerListResponse struct {
	Answers []answerResponse `json:"answers"`
}

// List returns a question's answers, filtered by visibility rules.
// GET /questions/{id}/answers
func (h *AnswerHandler) List(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	answers, err := h.answers.ListByQuestion(r.Context(), questionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := answerListResponse{Answers: make([]answerResponse, 0, len(answers))}
	for _, a := range answers {
		resp.Answers = append(resp.Answers, toAnswerResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

type selectBestAnswerRequest struct {
	AnswerID uuid.UUID `json:"answer_id"`
}

type selectBestAnswerResponse struct {
	Question     questionResponse      `json:"question"`
	Answer       answerResponse        `json:"answer"`
	Distribution *distributionResponse `json:"distribution,omitempty"`
}

// SelectBest marks an answer as the best answer of the caller's question.
// POST /questions/{id}/best-answer
func (h *AnswerHandler) SelectBest(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req selectBestAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AnswerID == uuid.Nil {
		handleError(w, r, h.log, domain.NewValidationError("answer_id", "required"))
		return
	}

	result, err := h.answers.SelectBest(r.Context(), questionID, req.AnswerID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := selectBestAnswerResponse{
		Question: toQuestionResponse(result.Question),
		Answer:   toAnswerResponse(result.Answer),
	}
	if result.Distribution != nil {
		dist := toDistributionResponse(result.Distribution)
		resp.Distribution = &dist
	}
	writeJSON(w, http.StatusOK, resp)
}

type distributionResponse struct {
	Outcome           string `json:"outcome"`
	ScopeType         string `json:"scope_type"`
	ScopeID           string `json:"scope_id"`
	PoolAmount        int64  `json:"pool_amount"`
	DistributedAmount int64  `json:"distributed_amount"`
	Remainder         int64  `json:"remainder"`
	TotalPoints       int64  `json:"total_points"`
	RewardCount       int    `json:"reward_count"`
}

func toDistributionResponse(d *reward.DistributionResult) distributionResponse {
	return distributionResponse{
		Outcome:           string(d.Outcome),
		ScopeType:         string(d.Scope.Type),
		ScopeID:           d.Scope.ID,
		PoolAmount:        d.PoolAmount,
		DistributedAmount: d.DistributedAmount,
		Remainder:         d.Remainder,
		TotalPoints:       d.TotalPoints,
		RewardCount:       d.RewardCount,
	}
}
