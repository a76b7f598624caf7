package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/service/reward"
)

type monthlyDistributor interface {
	DistributeMonthly(ctx context.Context, period string) (*reward.DistributionResult, error)
}

// startScheduler runs the cron job that closes the previous month's period
// pool. The job is safe to fire more than once: distribution is idempotent,
// a second run reports "already distributed". Returns a shutdown function.
func startScheduler(cfg config.SchedulerConfig, distributor monthlyDistributor, logger *slog.Logger) (func() error, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler timezone %q: %w", cfg.Timezone, err)
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	log := logger.With("component", "scheduler")

	_, err = sched.NewJob(
		gocron.CronJob(cfg.Cron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			// Empty period means the previous calendar month.
			result, err := distributor.DistributeMonthly(ctx, "")
			if err != nil {
				log.Error("monthly distribution failed", slog.String("error", err.Error()))
				return
			}
			log.Info("monthly distribution finished",
				slog.String("outcome", string(result.Outcome)),
				slog.String("period", result.Scope.ID),
				slog.Int64("distributed_amount", result.DistributedAmount),
				slog.Int("reward_count", result.RewardCount),
			)
		}),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule monthly distribution: %w", err)
	}

	sched.Start()
	log.Info("scheduler started", slog.String("cron", cfg.Cron), slog.String("timezone", cfg.Timezone))

	return sched.Shutdown, nil
}
