package rest

import (
	"net/http"

	"github.com/kotaeba/kotaeba-backend/internal/transport/middleware"
)

// Handlers bundles the REST handlers for router construction.
type Handlers struct {
	Questions *QuestionHandler
	Answers   *AnswerHandler
	Rewards   *RewardHandler
	Blocks    *BlockHandler
	Admin     *AdminHandler
	Health    *HealthHandler
}

// NewRouter builds the HTTP route table. Health endpoints are public;
// everything else sits behind the auth middleware.
func NewRouter(h Handlers, auth middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	api := http.NewServeMux()

	api.HandleFunc("POST /questions", h.Questions.Submit)
	api.HandleFunc("GET /questions", h.Questions.Feed)
	api.HandleFunc("GET /questions/next", h.Questions.Next)
	api.HandleFunc("GET /questions/mine", h.Questions.Mine)
	api.HandleFunc("GET /questions/saved", h.Questions.Answered)
	api.HandleFunc("GET /questions/favorites", h.Questions.Favorites)
	api.HandleFunc("POST /questions/{id}/favorite", h.Questions.Favorite)
	api.HandleFunc("DELETE /questions/{id}/favorite", h.Questions.Unfavorite)
	api.HandleFunc("POST /questions/{id}/report", h.Questions.Report)

	api.HandleFunc("POST /questions/{id}/answers", h.Answers.Submit)
	api.HandleFunc("GET /questions/{id}/answers", h.Answers.List)
	api.HandleFunc("POST /questions/{id}/best-answer", h.Answers.SelectBest)

	api.HandleFunc("POST /questions/{id}/unlock", h.Rewards.UnlockQuestion)
	api.HandleFunc("POST /answers/{id}/unlock", h.Rewards.UnlockAnswer)
	api.HandleFunc("GET /rewards", h.Rewards.ListMine)

	api.HandleFunc("POST /questions/{id}/block", h.Blocks.BlockQuestion)
	api.HandleFunc("DELETE /questions/{id}/block", h.Blocks.UnblockQuestion)
	api.HandleFunc("POST /blocks", h.Blocks.BlockUser)
	api.HandleFunc("DELETE /blocks/{userId}", h.Blocks.UnblockUser)
	api.HandleFunc("GET /blocks", h.Blocks.List)
	api.HandleFunc("GET /blocks/questions", h.Blocks.ListQuestionBlocks)

	api.HandleFunc("POST /admin/rewards/distribute", h.Admin.Distribute)

	mux.Handle("/", auth(api))

	return mux
}
