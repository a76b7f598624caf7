package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/question"
)

type questionService interface {
	Submit(ctx context.Context, input question.SubmitInput) (*domain.Question, error)
	Next(ctx context.Context) (*domain.Question, error)
	GetFeed(ctx context.Context) (*question.Feed, error)
	ListMine(ctx context.Context) ([]*domain.Question, error)
	ListAnswered(ctx context.Context) ([]*domain.Question, error)
	ListFavorites(ctx context.Context) ([]*domain.Question, error)
	Favorite(ctx context.Context, questionID uuid.UUID) error
	Unfavorite(ctx context.Context, questionID uuid.UUID) error
	Report(ctx context.Context, input question.ReportInput) error
}

// QuestionHandler serves question REST endpoints.
type QuestionHandler struct {
	questions questionService
	log       *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(questions questionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		log:       logger.With("handler", "question"),
	}
}

type questionResponse struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	AuthorID     string  `json:"author_id"`
	Status       string  `json:"status"`
	BestAnswerID *string `json:"best_answer_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toQuestionResponse(q *domain.Question) questionResponse {
	resp := questionResponse{
		ID:        q.ID.String(),
		Text:      q.Text,
		AuthorID:  q.AuthorID.String(),
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt.UTC().Format(time.RFC3339),
	}
	if q.BestAnswerID != nil {
		id := q.BestAnswerID.String()
		resp.BestAnswerID = &id
	}
	return resp
}

func toQuestionResponses(qs []*domain.Question) []questionResponse {
	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

type submitQuestionRequest struct {
	Text string `json:"text"`
}

type submitQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Status     string `json:"status"`
}

// Submit creates a new question after moderation.
// POST /questions
func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.questions.Submit(r.Context(), question.SubmitInput{Text: req.Text})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitQuestionResponse{
		QuestionID: q.ID.String(),
		Status:     string(q.Status),
	})
}

// Next returns a random unanswered question, or 204 when none remains.
// GET /questions/next
func (h *QuestionHandler) Next(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.Next(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(q))
}

type feedResponse struct {
	Next      *questionResponse  `json:"next"`
	Mine      []questionResponse `json:"mine"`
	Favorites []questionResponse `json:"favorites"`
}

// Feed returns the merged home-screen payload.
// GET /questions
func (h *QuestionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.questions.GetFeed(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := feedResponse{
		Mine:      toQuestionResponses(feed.Mine),
		Favorites: toQuestionResponses(feed.Favorites),
	}
	if feed.Next != nil {
		next := toQuestionResponse(feed.Next)
		resp.Next = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

type questionListResponse struct {
	Questions []questionResponse `json:"questions"`
}

// Mine returns the caller's own questions.
// GET /questions/mine
func (h *QuestionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.questions.ListMine)
}

// Answered returns the questions the caller has answered.
// GET /questions/saved
func (h *QuestionHandler) Answered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.questions.ListAnswered)
}

// Favorites returns the caller's favorited questions.
// GET /questions/favorites
func (h *QuestionHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.questions.ListFavorites)
}

func (h *QuestionHandler) list(w http.ResponseWriter, r *http.Request, fn func(context.Context) ([]*domain.Question, error)) {
	qs, err := fn(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, questionListResponse{Questions: toQuestionResponses(qs)})
}

// Favorite marks a question as favorited.
// POST /questions/{id}/favorite
func (h *QuestionHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.questions.Favorite(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unfavorite removes a favorite. Idempotent.
// DELETE /questions/{id}/favorite
func (h *QuestionHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.questions.Unfavorite(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reportQuestionRequest struct {
	Reason string `json:"reason"`
}

// Report files a report against a question.
// POST /questions/{id}/report
func (h *QuestionHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req reportQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := question.ReportInput{QuestionID: id, Reason: req.Reason}
	if err := h.questions.Report(r.Context(), input); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
