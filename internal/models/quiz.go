// Package models defines core data structures for quizzes, questions, and generation requests.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty controls how much sentence context a question stem reveals
// and how distractor candidate pools are gated.
type Difficulty string

const (
	// DifficultyEasy masks every occurrence of the answer in the sentence.
	DifficultyEasy Difficulty = "Easy"
	// DifficultyMedium masks the answer together with its neighboring words.
	DifficultyMedium Difficulty = "Medium"
	// DifficultyHard discards the sentence and reveals only the answer's entity label.
	DifficultyHard Difficulty = "Hard"
)

// ParseDifficulty parses a difficulty string case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use Easy, Medium, or Hard)", s)
	}
}

// MCQ is a single multiple-choice question. Choices always holds exactly
// four distinct strings, one of which is the correct answer; Answer is the
// letter (A-D) of that choice.
type MCQ struct {
	Stem    string   `json:"stem"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}

// CorrectChoice returns the choice text indexed by the answer letter.
func (q *MCQ) CorrectChoice() string {
	if q.Answer == "" {
		return ""
	}
	i := int(q.Answer[0] - 'A')
	if i < 0 || i >= len(q.Choices) {
		return ""
	}
	return q.Choices[i]
}

// Quiz is one generated batch of questions for a document.
type Quiz struct {
	ID             string     `json:"id"`
	Difficulty     Difficulty `json:"difficulty"`
	Questions      []MCQ      `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	CreatedAt      time.Time  `json:"created_at"`
}

// QuizRequest is the input for generating a quiz from raw text.
type QuizRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"num_questions,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}
