package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Moderation ModerationConfig `yaml:"moderation"`
	Judge      JudgeConfig      `yaml:"judge"`
	Rewards    RewardsConfig    `yaml:"rewards"`
	Selection  SelectionConfig  `yaml:"selection"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds token validation settings. Token issuance lives in the
// identity service; this backend only verifies.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"kotaeba"`
}

// ModerationConfig holds toxicity-scoring settings and the decision
// thresholds. The thresholds are defined once here; earlier revisions of
// the product re-derived them per call site with drifting values.
type ModerationConfig struct {
	APIKey          string        `yaml:"api_key"          env:"MODERATION_API_KEY"          env-required:"true"`
	BaseURL         string        `yaml:"base_url"         env:"MODERATION_BASE_URL"         env-default:"https://commentanalyzer.googleapis.com/v1alpha1"`
	Timeout         time.Duration `yaml:"timeout"          env:"MODERATION_TIMEOUT"          env-default:"10s"`
	LanguagesRaw    string        `yaml:"languages"        env:"MODERATION_LANGUAGES"        env-default:"en,ja"`
	RejectThreshold float64       `yaml:"reject_threshold" env:"MODERATION_REJECT_THRESHOLD" env-default:"0.7"`
	ReviewThreshold float64       `yaml:"review_threshold" env:"MODERATION_REVIEW_THRESHOLD" env-default:"0.3"`

	// Languages is parsed from LanguagesRaw during validation.
	Languages []string `yaml:"-" env:"-"`
}

// JudgeConfig holds generative-judge settings.
type JudgeConfig struct {
	APIKey    string `yaml:"api_key"    env:"JUDGE_API_KEY"    env-required:"true"`
	Model     string `yaml:"model"      env:"JUDGE_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64  `yaml:"max_tokens" env:"JUDGE_MAX_TOKENS" env-default:"64"`
}

// RewardsConfig holds monetary constants for unlocks and pools.
// Amounts are integer currency units (yen).
type RewardsConfig struct {
	UnlockPrice      int64   `yaml:"unlock_price"      env:"REWARDS_UNLOCK_PRICE"      env-default:"100"`
	PoolPercentage   float64 `yaml:"pool_percentage"   env:"REWARDS_POOL_PERCENTAGE"   env-default:"0.6"`
	AnswerPercentage float64 `yaml:"answer_percentage" env:"REWARDS_ANSWER_PERCENTAGE" env-default:"0.6"`
	TestPeriods      bool    `yaml:"test_periods"      env:"REWARDS_TEST_PERIODS"      env-default:"false"`
}

// SelectionConfig holds random-question-selection parameters.
// ExclusionCap mirrors the store's "not-in" list limit: at most that many
// excluded ids go into the SQL filter, the rest is filtered in memory.
type SelectionConfig struct {
	BatchSize    int `yaml:"batch_size"    env:"SELECTION_BATCH_SIZE"    env-default:"10"`
	ExclusionCap int `yaml:"exclusion_cap" env:"SELECTION_EXCLUSION_CAP" env-default:"10"`
}

// SchedulerConfig holds the monthly distribution schedule.
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"SCHEDULER_ENABLED"  env-default:"true"`
	Cron     string `yaml:"cron"     env:"SCHEDULER_CRON"     env-default:"0 0 1 * *"`
	Timezone string `yaml:"timezone" env:"SCHEDULER_TIMEZONE" env-default:"Asia/Tokyo"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
