package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// DistributeMonthly runs the period distribution for the given period, or
// for the previous calendar month when period is empty. This is both the
// scheduler entry point and the manual operator trigger; distribution
// idempotence makes double invocation harmless.
func (s *Service) DistributeMonthly(ctx context.Context, period string) (*DistributionResult, error) {
	var p domain.Period
	if period == "" {
		p = domain.PreviousPeriod(time.Now())
	} else {
		parsed, err := domain.ParsePeriod(period)
		if err != nil {
			return nil, domain.NewValidationError("period", "must be YYYY-MM")
		}
		p = parsed
	}

	s.log.InfoContext(ctx, "monthly distribution triggered", "period", string(p))

	result, err := s.Distribute(ctx, domain.PeriodScope(p))
	if err != nil {
		return nil, fmt.Errorf("distribute period %s: %w", p, err)
	}
	return result, nil
}
