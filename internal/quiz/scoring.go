package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidQuiz = errors.New("invalid quiz")

// Score grades answers keyed by question index. The returned slice has one
// entry per question, Unanswered where no answer was given. Answers for
// indexes outside the quiz are ignored; choices outside a question's options
// are recorded as Unanswered.
func Score(q *Quiz, answers map[int]int) (int, []int) {
	submitted := make([]int, len(q.Questions))
	for i := range submitted {
		submitted[i] = Unanswered
	}
	for idx, choice := range answers {
		if idx < 0 || idx >= len(submitted) {
			continue
		}
		if choice < 0 || choice >= len(q.Questions[idx].Options) {
			choice = Unanswered
		}
		submitted[idx] = choice
	}

	score := 0
	for i, qq := range q.Questions {
		if submitted[i] == qq.CorrectAnswerIndex {
			score++
		}
	}
	return score, submitted
}

// Validate checks a creation request. Errors wrap ErrInvalidQuiz.
func Validate(req CreateQuizRequest) error {
	if strings.TrimSpace(req.QuizTitle) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidQuiz)
	}
	if strings.TrimSpace(req.ClassroomID) == "" {
		return fmt.Errorf("%w: classroom is required", ErrInvalidQuiz)
	}
	if req.TimeLimitMinutes <= 0 {
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidQuiz)
	}
	if len(req.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidQuiz)
	}
	for i, qq := range req.Questions {
		if strings.TrimSpace(qq.QuestionText) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidQuiz, i+1)
		}
		if len(qq.Options) != OptionsPerQuestion {
			return fmt.Errorf("%w: question %d needs %d options", ErrInvalidQuiz, i+1, OptionsPerQuestion)
		}
		if qq.CorrectAnswerIndex < 0 || qq.CorrectAnswerIndex >= OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has no valid correct answer", ErrInvalidQuiz, i+1)
		}
	}
	return nil
}
