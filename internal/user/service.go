package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizroom/internal/config"
)

var (
	ErrInvalidInput       = errors.New("name, username, email and password are required")
	ErrInvalidRole        = errors.New("role must be student or teacher")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Account, error)
	Login(ctx context.Context, req LoginRequest) (*Account, error)
	ChangePassword(ctx context.Context, role Role, username string, req ChangePasswordRequest) error
	Profile(ctx context.Context, role Role, username string) (*Account, error)
}

type service struct {
	repo UserRepository
	// signupMu makes the existence checks and the insert one step.
	signupMu sync.Mutex
}

func NewService(repo UserRepository) Service {
	return &service{repo: repo}
}

// normalizeEmail is also the email index key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*Account, error) {
	log := config.WithContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}
	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	if _, taken := s.repo.FindUsernameByEmail(req.Email); taken {
		log.WithField("email", req.Email).Warn("Signup rejected: email already registered")
		return nil, ErrEmailTaken
	}

	// Usernames are unique across both roles.
	_, isStudent := s.repo.FindStudent(req.Username)
	_, isTeacher := s.repo.FindTeacher(req.Username)
	if isStudent || isTeacher {
		log.WithField("username", req.Username).Warn("Signup rejected: username already taken")
		return nil, ErrUsernameTaken
	}

	var persist func(context.Context) error
	switch req.Role {
	case RoleStudent:
		s.repo.CreateStudent(req.Name, req.Username, req.Email, req.Password)
		persist = s.repo.PersistStudents
	case RoleTeacher:
		s.repo.CreateTeacher(req.Name, req.Username, req.Email, req.Password)
		persist = s.repo.PersistTeachers
	}

	if err := persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist new user")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"username": req.Username,
		"role":     req.Role,
	}).Info("User signed up successfully")
	return s.Profile(ctx, req.Role, req.Username)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, error) {
	log := config.WithContext(ctx)

	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	username, ok := s.repo.FindUsernameByEmail(req.Email)
	if !ok {
		log.Warn("Login attempt for unknown email")
		return nil, ErrInvalidCredentials
	}

	rec, ok := s.repo.Get(req.Role, username)
	if !ok || rec.Password != req.Password {
		log.WithField("username", username).Warn("Login rejected")
		return nil, ErrInvalidCredentials
	}

	return newAccount(req.Role, &rec), nil
}

func (s *service) ChangePassword(ctx context.Context, role Role, username string, req ChangePasswordRequest) error {
	log := config.WithContext(ctx)

	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	rec, ok := s.repo.Get(role, username)
	if !ok {
		return ErrUserNotFound
	}
	if rec.Password != req.CurrentPassword {
		log.WithField("username", username).Warn("Password change rejected: wrong current password")
		return ErrInvalidCredentials
	}

	if err := s.repo.UpdatePassword(role, username, req.NewPassword); err != nil {
		return err
	}

	persist := s.repo.PersistStudents
	if role == RoleTeacher {
		persist = s.repo.PersistTeachers
	}
	if err := persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist password change")
		return err
	}

	log.WithField("username", username).Info("Password updated successfully")
	return nil
}

func (s *service) Profile(_ context.Context, role Role, username string) (*Account, error) {
	rec, ok := s.repo.Get(role, username)
	if !ok {
		return nil, ErrUserNotFound
	}
	return newAccount(role, &rec), nil
}
