package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/quizroom/internal/aiquiz"
	"github.com/saulo-duarte/quizroom/internal/attempt"
	"github.com/saulo-duarte/quizroom/internal/auth"
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/middlewares"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	ClassroomHandler *classroom.Handler
	QuizHandler      *quiz.Handler
	AttemptHandler   *attempt.Handler
	AIQuizHandler    *aiquiz.Handler
	CORSOrigins      []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.UserHandler.Signup)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/classrooms", classroom.Routes(cfg.ClassroomHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
		r.Mount("/leaderboards", attempt.LeaderboardRoutes(cfg.AttemptHandler))
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))

		r.Get("/classrooms/{code}/quizzes", cfg.QuizHandler.ListForClassroom)
	})
	return r
}
