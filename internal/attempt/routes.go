package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/user"
)

// Routes serves the student attempt flow.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.RequireRole(string(user.RoleStudent)))

	r.Get("/me", h.History)
	r.Get("/{quizID}/start", h.StartAttempt)
	r.Post("/{quizID}", h.SubmitAttempt)
	return r
}

// LeaderboardRoutes is open to both roles.
func LeaderboardRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{quizID}", h.GetLeaderboard)
	return r
}
