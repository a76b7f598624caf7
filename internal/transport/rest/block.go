package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/block"
)

type blockService interface {
	BlockUser(ctx context.Context, input block.BlockUserInput) error
	BlockByQuestion(ctx context.Context, questionID uuid.UUID, reason string) error
	Unblock(ctx context.Context, blockedUserID uuid.UUID) error
	UnblockByQuestion(ctx context.Context, questionID uuid.UUID) error
	List(ctx context.Context) ([]*domain.BlockRelation, error)
	ListQuestionBlocks(ctx context.Context) ([]*domain.BlockRelation, error)
}

// BlockHandler serves block REST endpoints.
type BlockHandler struct {
	blocks blockService
	log    *slog.Logger
}

// NewBlockHandler creates a BlockHandler.
func NewBlockHandler(blocks blockService, logger *slog.Logger) *BlockHandler {
	return &BlockHandler{
		blocks: blocks,
		log:    logger.With("handler", "block"),
	}
}

type blockResponse struct {
	BlockedUserID    string  `json:"blocked_user_id"`
	OriginQuestionID *string `json:"origin_question_id,omitempty"`
	QuestionText     string  `json:"question_text,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func toBlockResponse(b *domain.BlockRelation) blockResponse {
	resp := blockResponse{
		BlockedUserID: b.BlockedUserID.String(),
		QuestionText:  b.QuestionText,
		Reason:        b.Reason,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.OriginQuestionID != nil {
		id := b.OriginQuestionID.String()
		resp.OriginQuestionID = &id
	}
	return resp
}

type blockUserRequest struct {
	BlockedUserID uuid.UUID `json:"blocked_user_id"`
	Reason        string    `json:"reason"`
}

// BlockUser blocks another user directly.
// POST /blocks
func (h *BlockHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	var req blockUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := block.BlockUserInput{BlockedUserID: req.BlockedUserID, Reason: req.Reason}
	if err := h.blocks.BlockUser(r.Context(), input); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnblockUser removes a block. Idempotent.
// DELETE /blocks/{userId}
func (h *BlockHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.blocks.Unblock(r.Context(), userID); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type blockQuestionRequest struct {
	Reason string `json:"reason"`
}

// BlockQuestion blocks the author of a question, remembering the question
// as the block's origin. The body is optional.
// POST /questions/{id}/block
func (h *BlockHandler) BlockQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req blockQuestionRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	if err := h.blocks.BlockByQuestion(r.Context(), questionID, req.Reason); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnblockQuestion removes the block on a question's author. Idempotent.
// DELETE /questions/{id}/block
func (h *BlockHandler) UnblockQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.blocks.UnblockByQuestion(r.Context(), questionID); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type blockListResponse struct {
	Blocks []blockResponse `json:"blocks"`
}

// List returns all of the caller's blocks, newest first.
// GET /blocks
func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.blocks.List)
}

// ListQuestionBlocks returns the caller's blocks that originated from a
// question.
// GET /blocks/questions
func (h *BlockHandler) ListQuestionBlocks(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.blocks.ListQuestionBlocks)
}

func (h *BlockHandler) list(w http.ResponseWriter, r *http.Request, fn func(context.Context) ([]*domain.BlockRelation, error)) {
	relations, err := fn(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := blockListResponse{Blocks: make([]blockResponse, 0, len(relations))}
	for _, b := range relations {
		resp.Blocks = append(resp.Blocks, toBlockResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}
