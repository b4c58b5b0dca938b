package quiz

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

// Unanswered marks a question the student skipped.
const Unanswered = -1

type Question struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

type Quiz struct {
	QuizID           string     `json:"quizId"`
	QuizTitle        string     `json:"quizTitle"`
	ClassroomID      string     `json:"classroomId"`
	TimeLimitMinutes int        `json:"timeLimitMinutes"`
	Questions        []Question `json:"questions"`
}

// PublicQuestion is a question as shown to a student taking the quiz.
type PublicQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

type PublicQuiz struct {
	QuizID           string           `json:"quizId"`
	QuizTitle        string           `json:"quizTitle"`
	ClassroomID      string           `json:"classroomId"`
	TimeLimitMinutes int              `json:"timeLimitMinutes"`
	Questions        []PublicQuestion `json:"questions"`
}

type Summary struct {
	QuizID           string `json:"quizId"`
	QuizTitle        string `json:"quizTitle"`
	ClassroomID      string `json:"classroomId"`
	TimeLimitMinutes int    `json:"timeLimitMinutes"`
	TotalQuestions   int    `json:"totalQuestions"`
}

type CreateQuizRequest struct {
	QuizTitle        string     `json:"quizTitle"`
	ClassroomID      string     `json:"classroomId"`
	TimeLimitMinutes int        `json:"timeLimitMinutes"`
	Questions        []Question `json:"questions"`
}

func PublicView(q *Quiz) PublicQuiz {
	out := PublicQuiz{
		QuizID:           q.QuizID,
		QuizTitle:        q.QuizTitle,
		ClassroomID:      q.ClassroomID,
		TimeLimitMinutes: q.TimeLimitMinutes,
		Questions:        make([]PublicQuestion, len(q.Questions)),
	}
	for i, qq := range q.Questions {
		out.Questions[i] = PublicQuestion{
			QuestionText: qq.QuestionText,
			Options:      append([]string{}, qq.Options...),
		}
	}
	return out
}

func (q *Quiz) Summary() Summary {
	return Summary{
		QuizID:           q.QuizID,
		QuizTitle:        q.QuizTitle,
		ClassroomID:      q.ClassroomID,
		TimeLimitMinutes: q.TimeLimitMinutes,
		TotalQuestions:   len(q.Questions),
	}
}
