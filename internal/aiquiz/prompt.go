package aiquiz

import (
	"fmt"
	"strings"
)

const (
	defaultCount = 3
	maxCount     = 10
)

const systemPrompt = `
You write multiple-choice questions for a classroom quiz application.

Rules:
1. Only write questions about school subjects (mathematics, physics, chemistry, biology, history, geography, literature, languages and similar).
2. Every question has exactly one correct answer.
3. Difficulty is one of: easy, medium, hard.
4. Every question has:
   - "question": the question text
   - "options": exactly 4 plausible options, without letter prefixes
   - "answer": the letter of the correct option, A to D
   - "explanation": a short explanation of why the answer is correct

Expected JSON:

[
  {
    "topic": "<topic>",
    "difficulty": "<easy | medium | hard>",
    "question": "<question text>",
    "options": ["...", "...", "...", "..."],
    "answer": "C",
    "explanation": "<short explanation>"
  }
]

Quality:
- Keep options similar in length and structure so the answer is not obvious.
- Use plausible distractors.
- Never reveal the answer in the question text.
- Reply with pure, valid JSON and nothing else.
`

func clampCount(n int) int {
	if n <= 0 {
		return defaultCount
	}
	if n > maxCount {
		return maxCount
	}
	return n
}

func BuildUserPrompt(req QuestionRequest) string {
	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = "medium"
	}

	context := ""
	if c := strings.TrimSpace(req.Context); c != "" {
		context = fmt.Sprintf("Use this context for the questions: %s. ", c)
	}

	return fmt.Sprintf(
		"Write %d multiple-choice questions about %q with %s difficulty. %s"+
			"Follow the JSON format from the system prompt exactly.",
		clampCount(req.Count), strings.TrimSpace(req.Topic), difficulty, context,
	)
}
