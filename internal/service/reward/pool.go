package reward

import (
	"context"
	"fmt"
	"math"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// AddFunds accumulates a gross payment into the scope's pool. The pool
// keeps floor(gross * pool percentage); the rest is the platform's share.
// Returns the net amount added.
//
// Funding a pool that has already been distributed fails with
// domain.ErrConflict and nothing is added.
func (s *Service) AddFunds(ctx context.Context, scope domain.PoolScope, gross int64) (int64, error) {
	net := poolShare(gross, s.cfg.PoolPercentage)

	if err := s.pools.AddFunds(ctx, scope, net); err != nil {
		return 0, fmt.Errorf("add funds to pool %s: %w", scope, err)
	}
	return net, nil
}

// poolShare computes the pool's cut of a gross amount, rounded down.
// Integer yen only; fractions stay with the platform.
func poolShare(gross int64, pct float64) int64 {
	return int64(math.Floor(float64(gross) * pct))
}
