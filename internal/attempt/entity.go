package attempt

import "github.com/saulo-duarte/quizroom/internal/quiz"

type QuizResult struct {
	ResultID         string  `json:"resultId"`
	QuizID           string  `json:"quizId"`
	StudentUsername  string  `json:"studentUsername"`
	Score            int     `json:"score"`
	TimeTakenSeconds float64 `json:"timeTakenSeconds"`
	SubmittedAnswers []int   `json:"submittedAnswers"`
}

// StartResponse carries the start time the client echoes back on submit.
type StartResponse struct {
	Quiz      quiz.PublicQuiz `json:"quiz"`
	StartTime int64           `json:"startTime"`
}

// SubmitRequest answers are keyed by question index.
type SubmitRequest struct {
	StartTime int64       `json:"startTime"`
	Answers   map[int]int `json:"answers"`
}

type Leaderboard struct {
	QuizID         string  `json:"quizId"`
	QuizTitle      string  `json:"quizTitle"`
	TotalQuestions int     `json:"totalQuestions"`
	Entries        []Entry `json:"leaderboard"`
}

type HistoryItem struct {
	QuizID         string `json:"quizId"`
	QuizTitle      string `json:"quizTitle"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	TimeTaken      string `json:"timeTaken"`
}
