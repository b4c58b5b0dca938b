package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidStartTime):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrQuizNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrAlreadyAttempted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Start(r.Context(), claims.UserID, chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid submission body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.Submit(r.Context(), claims.UserID, chi.URLParam(r, "quizID"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, res)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.History(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	lb, err := h.service.Leaderboard(r.Context(), user.Role(claims.Role), claims.UserID, chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, lb)
}
