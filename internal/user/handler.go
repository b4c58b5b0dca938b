package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/config"
)

type Handler struct {
	service    Service
	sessionTTL time.Duration
}

func NewHandler(s Service, sessionTTL time.Duration) *Handler {
	return &Handler{service: s, sessionTTL: sessionTTL}
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, status int, acc *Account) {
	token, err := auth.GenerateJWT(acc.Username, string(acc.Role), h.sessionTTL)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to sign session token")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.sessionTTL)
	config.JSON(w, status, SessionResponse{Account: acc, Token: token})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid signup body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	acc, err := h.service.Signup(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRole):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, http.StatusCreated, acc)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid login body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	acc, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.startSession(w, r, http.StatusOK, acc)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	acc, err := h.service.Profile(r.Context(), Role(claims.Role), claims.UserID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	config.JSON(w, http.StatusOK, acc)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid change password body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.service.ChangePassword(r.Context(), Role(claims.Role), claims.UserID, req)
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, "current password is incorrect", http.StatusForbidden)
		return
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "password updated successfully",
	})
}
