// Package render writes generated quizzes as plain text or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/mondai/internal/models"
)

// Format is the output format for a rendered quiz.
type Format string

const (
	// FormatText is the human-readable block format (default).
	FormatText Format = "text"
	// FormatJSON is structured JSON for machine consumption.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteQuiz writes the quiz to w in the given format.
func WriteQuiz(w io.Writer, quiz *models.Quiz, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(quiz)
	default:
		_, err := io.WriteString(w, QuizText(quiz))
		return err
	}
}

// QuizText renders one block per question:
//
//	Q1: <stem>
//	    A. <choice>
//	    ...
//	Correct Answer: <letter>
//
// with blocks separated by a blank line.
func QuizText(quiz *models.Quiz) string {
	var b strings.Builder
	for i, q := range quiz.Questions {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.Stem)
		for j, choice := range q.Choices {
			fmt.Fprintf(&b, "    %c. %s\n", 'A'+j, choice)
		}
		fmt.Fprintf(&b, "Correct Answer: %s\n\n", q.Answer)
	}
	return b.String()
}
