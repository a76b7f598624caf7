// Command server runs the Q&A backend HTTP API.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables;
// a .env file in the working directory is loaded when present.
//
// Exit codes: 0 = clean shutdown, 1 = startup or runtime error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kotaeba/kotaeba-backend/internal/app"
)

func main() {
	// Best effort; production deployments configure via real env vars.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
