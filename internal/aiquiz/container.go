package aiquiz

import (
	"context"

	"github.com/saulo-duarte/quizroom/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
}

// NewAIQuizContainer leaves the generator disabled when apiKey is empty or
// the client cannot be built.
func NewAIQuizContainer(ctx context.Context, apiKey string) *AIQuizContainer {
	var provider Provider
	if apiKey != "" {
		p, err := NewGeminiProvider(ctx, apiKey)
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("AI question generator disabled")
		} else {
			provider = p
		}
	}

	return &AIQuizContainer{
		Handler: NewHandler(NewService(provider)),
	}
}
