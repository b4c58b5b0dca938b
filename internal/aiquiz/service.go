package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/quiz"
)

var (
	ErrProviderUnavailable = errors.New("question generator is not configured")
	ErrTopicRequired       = errors.New("topic is required")
	ErrMalformedResponse   = errors.New("model response is not valid question JSON")
)

type Service interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionResponse, error)
}

type service struct {
	provider Provider
}

// NewService accepts a nil provider; every call then fails with
// ErrProviderUnavailable.
func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionResponse, error) {
	log := config.WithContext(ctx)

	if s.provider == nil {
		return nil, ErrProviderUnavailable
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, ErrTopicRequired
	}

	raw, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	drafts, err := parseDrafts(raw)
	if err != nil {
		log.WithError(err).Errorf("[AIQUIZ] could not decode model output:\n%s", raw)
		return nil, err
	}

	resp := &QuestionResponse{Questions: make([]Question, 0, len(drafts))}
	for _, d := range drafts {
		q, ok := d.toQuestion()
		if !ok {
			resp.Discarded++
			continue
		}
		resp.Questions = append(resp.Questions, q)
	}

	log.WithFields(logrus.Fields{
		"topic":     req.Topic,
		"generated": len(resp.Questions),
		"discarded": resp.Discarded,
	}).Info("Questions generated successfully")
	return resp, nil
}

func parseDrafts(raw string) ([]draft, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "` \n")

	var drafts []draft
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return drafts, nil
}

// stripLetter removes a leading "A) " or "A. " label.
func stripLetter(option string) string {
	o := strings.TrimSpace(option)
	if len(o) >= 2 && o[0] >= 'A' && o[0] <= 'D' && (o[1] == ')' || o[1] == '.') {
		return strings.TrimSpace(o[2:])
	}
	return o
}

func (d draft) toQuestion() (Question, bool) {
	if strings.TrimSpace(d.Question) == "" || len(d.Options) != quiz.OptionsPerQuestion {
		return Question{}, false
	}

	answer := strings.ToUpper(strings.TrimSpace(d.Answer))
	if answer == "" {
		return Question{}, false
	}
	idx := int(answer[0] - 'A')
	if idx < 0 || idx >= quiz.OptionsPerQuestion {
		return Question{}, false
	}

	options := make([]string, len(d.Options))
	for i, o := range d.Options {
		options[i] = stripLetter(o)
	}

	return Question{
		Question: quiz.Question{
			QuestionText:       strings.TrimSpace(d.Question),
			Options:            options,
			CorrectAnswerIndex: idx,
		},
		Explanation: strings.TrimSpace(d.Explanation),
	}, true
}
