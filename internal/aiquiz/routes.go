package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/user"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.RequireRole(string(user.RoleTeacher)))
	r.Post("/", h.GenerateQuestions)
	return r
}
