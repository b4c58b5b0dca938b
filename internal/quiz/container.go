package quiz

import (
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(backend storage.Backend, classrooms classroom.ClassroomRepository) *QuizContainer {
	repo := NewRepository(backend)
	service := NewService(repo, classrooms)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
