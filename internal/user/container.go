package user

import (
	"time"

	"github.com/saulo-duarte/quizroom/internal/storage"
)

type UserContainer struct {
	Repo    UserRepository
	Service Service
	Handler *Handler
}

func NewUserContainer(backend storage.Backend, mode storage.Mode, sessionTTL time.Duration) *UserContainer {
	repo := NewRepository(backend, mode)
	service := NewService(repo)
	handler := NewHandler(service, sessionTTL)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
