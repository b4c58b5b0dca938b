package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuiz):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, classroom.ErrClassroomNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid create quiz body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

// GetQuiz returns the full quiz to its owning teacher and the answer-free
// view to enrolled students.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "quiz id required", http.StatusBadRequest)
		return
	}

	if user.Role(claims.Role) == user.RoleTeacher {
		q, err := h.service.GetOwned(r.Context(), claims.UserID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		config.JSON(w, http.StatusOK, q)
		return
	}

	view, err := h.service.GetForStudent(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) ListForClassroom(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.service.ListForClassroom(r.Context(), user.Role(claims.Role), claims.UserID, chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, list)
}
