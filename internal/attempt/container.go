package attempt

import (
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

type AttemptContainer struct {
	Repo    ResultRepository
	Service Service
	Handler *Handler
}

func NewAttemptContainer(backend storage.Backend, quizzes quiz.QuizRepository, classrooms classroom.ClassroomRepository) *AttemptContainer {
	repo := NewRepository(backend)
	service := NewService(repo, quizzes, classrooms, nil)
	handler := NewHandler(service)

	return &AttemptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
