package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

type distributionServiceMock struct {
	DistributeMonthlyFunc func(ctx context.Context, period string) (*reward.DistributionResult, error)
}

func (m *distributionServiceMock) DistributeMonthly(ctx context.Context, period string) (*reward.DistributionResult, error) {
	return m.DistributeMonthlyFunc(ctx, period)
}

func TestAdminHandler_Distribute(t *testing.T) {
	svc := &distributionServiceMock{
		DistributeMonthlyFunc: func(ctx context.Context, period string) (*reward.DistributionResult, error) {
			assert.Equal(t, "2026-07", period)
			return &reward.DistributionResult{
				Outcome:           reward.OutcomeDistributed,
				Scope:             domain.PeriodScope(domain.Period("2026-07")),
				PoolAmount:        600,
				DistributedAmount: 600,
				TotalPoints:       100,
				RewardCount:       2,
			}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/distribute", strings.NewReader(`{"period":"2026-07"}`))
	rec := httptest.NewRecorder()

	h.Distribute(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp distributionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "distributed", resp.Outcome)
	assert.Equal(t, "2026-07", resp.ScopeID)
	assert.Equal(t, int64(600), resp.DistributedAmount)
	assert.Equal(t, 2, resp.RewardCount)
}

func TestAdminHandler_Distribute_DefaultPeriod(t *testing.T) {
	var gotPeriod string
	svc := &distributionServiceMock{
		DistributeMonthlyFunc: func(ctx context.Context, period string) (*reward.DistributionResult, error) {
			gotPeriod = period
			return &reward.DistributionResult{Outcome: reward.OutcomeNoPool}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/distribute", nil)
	rec := httptest.NewRecorder()

	h.Distribute(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, gotPeriod)
}

func TestAdminHandler_Distribute_QueryPeriod(t *testing.T) {
	var gotPeriod string
	svc := &distributionServiceMock{
		DistributeMonthlyFunc: func(ctx context.Context, period string) (*reward.DistributionResult, error) {
			gotPeriod = period
			return &reward.DistributionResult{Outcome: reward.OutcomeAlreadyDistributed}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/distribute?period=2026-06", nil)
	rec := httptest.NewRecorder()

	h.Distribute(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-06", gotPeriod)
}

func TestAdminHandler_Distribute_InvalidPeriod(t *testing.T) {
	svc := &distributionServiceMock{
		DistributeMonthlyFunc: func(ctx context.Context, period string) (*reward.DistributionResult, error) {
			return nil, domain.NewValidationError("period", "must be YYYY-MM")
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/distribute", strings.NewReader(`{"period":"July 2026"}`))
	rec := httptest.NewRecorder()

	h.Distribute(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "period")
}
