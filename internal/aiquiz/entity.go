package aiquiz

import "github.com/saulo-duarte/quizroom/internal/quiz"

// draft is one question as the model writes it.
type draft struct {
	Topic       string   `json:"topic"`
	Difficulty  string   `json:"difficulty"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type QuestionRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
	Context    string `json:"context"`
}

// Question is ready to be placed in a quiz creation request.
type Question struct {
	quiz.Question
	Explanation string `json:"explanation,omitempty"`
}

type QuestionResponse struct {
	Questions []Question `json:"questions"`
	Discarded int        `json:"discarded"`
}
