package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizroom/internal/aiquiz"
	"github.com/saulo-duarte/quizroom/internal/attempt"
	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/router"
	"github.com/saulo-duarte/quizroom/internal/storage"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type Container struct {
	Config  *config.Config
	Backend storage.Backend

	UserContainer      *user.UserContainer
	ClassroomContainer *classroom.ClassroomContainer
	QuizContainer      *quiz.QuizContainer
	AttemptContainer   *attempt.AttemptContainer
	AIQuizContainer    *aiquiz.AIQuizContainer
}

// OpenBackend selects the persistence driver named by cfg.StorageDriver.
func OpenBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case "file":
		return storage.NewFileBackend(cfg.DataDir)
	case "bolt":
		return storage.OpenBolt(cfg.BoltPath)
	case "postgres":
		if err := config.Connect(ctx, cfg.DatabaseDSN); err != nil {
			return nil, err
		}
		return storage.NewGormBackend(config.DB)
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.StorageDriver)
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := NewWithBackend(ctx, cfg, backend)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}
	return c, nil
}

// NewWithBackend wires every module over backend and loads all tables.
func NewWithBackend(ctx context.Context, cfg *config.Config, backend storage.Backend) (*Container, error) {
	auth.Init(cfg.JWTSecret)

	mode := storage.Required
	if cfg.Bootstrap {
		mode = storage.Bootstrap
	}

	userContainer := user.NewUserContainer(backend, mode, cfg.SessionTTL)
	classroomContainer := classroom.NewClassroomContainer(backend, userContainer.Repo)
	quizContainer := quiz.NewQuizContainer(backend, classroomContainer.Repo)
	attemptContainer := attempt.NewAttemptContainer(backend, quizContainer.Repo, classroomContainer.Repo)
	aiQuizContainer := aiquiz.NewAIQuizContainer(ctx, cfg.GeminiAPIKey)

	c := &Container{
		Config:             cfg,
		Backend:            backend,
		UserContainer:      userContainer,
		ClassroomContainer: classroomContainer,
		QuizContainer:      quizContainer,
		AttemptContainer:   attemptContainer,
		AIQuizContainer:    aiQuizContainer,
	}

	loaders := []func(context.Context) error{
		userContainer.Repo.Load,
		classroomContainer.Repo.Load,
		quizContainer.Repo.Load,
		attemptContainer.Repo.Load,
	}
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			return nil, err
		}
	}

	config.WithContext(ctx).WithField("driver", cfg.StorageDriver).Info("Stores loaded successfully")
	return c, nil
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		ClassroomHandler: c.ClassroomContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		AttemptHandler:   c.AttemptContainer.Handler,
		AIQuizHandler:    c.AIQuizContainer.Handler,
		CORSOrigins:      c.Config.CORSOrigins,
	})
}

// Flush writes every table back to the backend.
func (c *Container) Flush(ctx context.Context) error {
	persisters := []func(context.Context) error{
		c.UserContainer.Repo.PersistStudents,
		c.UserContainer.Repo.PersistTeachers,
		c.ClassroomContainer.Repo.Persist,
		c.QuizContainer.Repo.Persist,
		c.AttemptContainer.Repo.Persist,
	}

	var errs []error
	for _, persist := range persisters {
		if err := persist(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) Close(ctx context.Context) error {
	return errors.Join(c.Flush(ctx), c.Backend.Close())
}
