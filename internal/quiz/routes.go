package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/user"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.RequireRole(string(user.RoleTeacher))).Post("/", h.CreateQuiz)
	r.Get("/{id}", h.GetQuiz)
	return r
}
