package classroom

import (
	"github.com/saulo-duarte/quizroom/internal/storage"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type ClassroomContainer struct {
	Repo    ClassroomRepository
	Service Service
	Handler *Handler
}

func NewClassroomContainer(backend storage.Backend, users user.UserRepository) *ClassroomContainer {
	repo := NewRepository(backend)
	service := NewService(repo, users)
	handler := NewHandler(service)

	return &ClassroomContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
