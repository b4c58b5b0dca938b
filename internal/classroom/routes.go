package classroom

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/user"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListClassrooms)
	r.Get("/{code}", h.GetClassroom)
	r.With(auth.RequireRole(string(user.RoleTeacher))).Post("/", h.CreateClassroom)
	r.With(auth.RequireRole(string(user.RoleStudent))).Post("/join", h.JoinClassroom)
	return r
}
