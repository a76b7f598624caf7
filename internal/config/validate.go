package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks cross-field constraints and normalizes derived fields.
// It is called by Load after the raw values are read.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters"))
	}

	m := &c.Moderation
	if m.RejectThreshold <= 0 || m.RejectThreshold > 1 {
		errs = append(errs, fmt.Errorf("moderation.reject_threshold must be in (0,1], got %v", m.RejectThreshold))
	}
	if m.ReviewThreshold < 0 || m.ReviewThreshold > 1 {
		errs = append(errs, fmt.Errorf("moderation.review_threshold must be in [0,1], got %v", m.ReviewThreshold))
	}
	if m.ReviewThreshold >= m.RejectThreshold {
		errs = append(errs, fmt.Errorf("moderation.review_threshold (%v) must be below reject_threshold (%v)",
			m.ReviewThreshold, m.RejectThreshold))
	}
	m.Languages = splitCSV(m.LanguagesRaw)
	if len(m.Languages) == 0 {
		errs = append(errs, errors.New("moderation.languages must list at least one language"))
	}

	if c.Rewards.UnlockPrice <= 0 {
		errs = append(errs, fmt.Errorf("rewards.unlock_price must be positive, got %d", c.Rewards.UnlockPrice))
	}
	if c.Rewards.PoolPercentage <= 0 || c.Rewards.PoolPercentage > 1 {
		errs = append(errs, fmt.Errorf("rewards.pool_percentage must be in (0,1], got %v", c.Rewards.PoolPercentage))
	}
	if c.Rewards.AnswerPercentage <= 0 || c.Rewards.AnswerPercentage > 1 {
		errs = append(errs, fmt.Errorf("rewards.answer_percentage must be in (0,1], got %v", c.Rewards.AnswerPercentage))
	}

	if c.Selection.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("selection.batch_size must be at least 1, got %d", c.Selection.BatchSize))
	}
	if c.Selection.ExclusionCap < 0 {
		errs = append(errs, fmt.Errorf("selection.exclusion_cap must not be negative, got %d", c.Selection.ExclusionCap))
	}

	if c.Scheduler.Enabled {
		if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("scheduler.timezone: %w", err))
		}
		if strings.TrimSpace(c.Scheduler.Cron) == "" {
			errs = append(errs, errors.New("scheduler.cron must not be empty"))
		}
	}

	return errors.Join(errs...)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
