// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kotaeba/kotaeba-backend/internal/adapter/postgres"
	answerrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/answer"
	blockrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/block"
	contributionrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/contribution"
	favoriterepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/favorite"
	questionrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/question"
	reportrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/report"
	rewardrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/reward"
	rewardpoolrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/rewardpool"
	unlockrepo "github.com/kotaeba/kotaeba-backend/internal/adapter/postgres/unlock"
	"github.com/kotaeba/kotaeba-backend/internal/adapter/provider/anthropic"
	"github.com/kotaeba/kotaeba-backend/internal/adapter/provider/perspective"
	"github.com/kotaeba/kotaeba-backend/internal/auth"
	"github.com/kotaeba/kotaeba-backend/internal/config"
	answersvc "github.com/kotaeba/kotaeba-backend/internal/service/answer"
	blocksvc "github.com/kotaeba/kotaeba-backend/internal/service/block"
	moderationsvc "github.com/kotaeba/kotaeba-backend/internal/service/moderation"
	questionsvc "github.com/kotaeba/kotaeba-backend/internal/service/question"
	rewardsvc "github.com/kotaeba/kotaeba-backend/internal/service/reward"
	"github.com/kotaeba/kotaeba-backend/internal/transport/middleware"
	"github.com/kotaeba/kotaeba-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and transport, starts the HTTP server and
// the distribution scheduler, and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("migrations applied")
	}

	txManager := postgres.NewTxManager(pool)

	questions := questionrepo.New(pool)
	answers := answerrepo.New(pool)
	blocks := blockrepo.New(pool)
	favorites := favoriterepo.New(pool)
	reports := reportrepo.New(pool)
	contributions := contributionrepo.New(pool)
	pools := rewardpoolrepo.New(pool)
	unlocks := unlockrepo.New(pool)
	rewards := rewardrepo.New(pool)

	scorer := perspective.NewClient(cfg.Moderation, logger)
	judge := anthropic.NewJudge(cfg.Judge, logger)

	moderationService := moderationsvc.NewService(logger, scorer, judge, cfg.Moderation)
	rewardService := rewardsvc.NewService(logger, contributions, pools, unlocks, rewards, questions, answers, txManager, cfg.Rewards)
	questionService := questionsvc.NewService(logger, questions, answers, blocks, favorites, reports, moderationService, cfg.Selection)
	answerService := answersvc.NewService(logger, answers, questions, rewardService, rewardService, moderationService, txManager)
	blockService := blocksvc.NewService(logger, blocks, questions)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	handlers := rest.Handlers{
		Questions: rest.NewQuestionHandler(questionService, logger),
		Answers:   rest.NewAnswerHandler(answerService, logger),
		Rewards:   rest.NewRewardHandler(rewardService, logger),
		Blocks:    rest.NewBlockHandler(blockService, logger),
		Admin:     rest.NewAdminHandler(rewardService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	}

	router := rest.NewRouter(handlers, middleware.Auth(jwtManager))

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	if cfg.Scheduler.Enabled {
		stopScheduler, err := startScheduler(cfg.Scheduler, rewardService, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := stopScheduler(); err != nil {
				logger.Error("stop scheduler", slog.String("error", err.Error()))
			}
		}()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
