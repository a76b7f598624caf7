package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

type distributionService interface {
	DistributeMonthly(ctx context.Context, period string) (*reward.DistributionResult, error)
}

// AdminHandler serves operator REST endpoints.
type AdminHandler struct {
	distribution distributionService
	log          *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(distribution distributionService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		distribution: distribution,
		log:          logger.With("handler", "admin"),
	}
}

type distributeRequest struct {
	Period string `json:"period"`
}

// Distribute triggers the monthly period-pool distribution. An empty
// period defaults to the previous calendar month; otherwise it must be
// YYYY-MM. Safe to call repeatedly.
// POST /admin/rewards/distribute
func (h *AdminHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	if req.Period == "" {
		req.Period = r.URL.Query().Get("period")
	}

	result, err := h.distribution.DistributeMonthly(r.Context(), req.Period)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDistributionResponse(result))
}
