package generator

import (
	"fmt"
	"strings"

	"github.com/hyperjump/mondai/internal/models"
)

// BuildStem produces the question text for a sentence and target under the
// given difficulty:
//
//   - Easy: every occurrence of the target substring becomes the blank.
//   - Medium: the target plus one word on each side becomes a single blank.
//     When the target is not a whole whitespace token of the sentence
//     (tokenization mismatch), masking falls back to the Easy strategy so
//     the answer never survives in the stem.
//   - Hard: the sentence is discarded; only the target's label is revealed.
func BuildStem(sentence string, target Target, difficulty models.Difficulty, blank string) string {
	switch difficulty {
	case models.DifficultyEasy:
		return strings.ReplaceAll(sentence, target.Text, blank)
	case models.DifficultyMedium:
		return maskTokenWindow(sentence, target.Text, blank)
	case models.DifficultyHard:
		topic := target.Label
		if topic == "" {
			topic = "the text"
		}
		return fmt.Sprintf("Fill in the blank: %s (Topic related to '%s')", blank, topic)
	default:
		return maskTokenWindow(sentence, target.Text, blank)
	}
}

// maskTokenWindow replaces the target token and its immediate neighbors
// (clipped to sentence bounds) with a single blank.
func maskTokenWindow(sentence, target, blank string) string {
	words := strings.Fields(sentence)
	idx := -1
	for i, w := range words {
		if w == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Target not found as a whole token; substring masking keeps the
		// answer out of the stem.
		return strings.ReplaceAll(sentence, target, blank)
	}
	lo := idx - 1
	if lo < 0 {
		lo = 0
	}
	hi := idx + 2
	if hi > len(words) {
		hi = len(words)
	}
	masked := make([]string, 0, len(words))
	masked = append(masked, words[:lo]...)
	masked = append(masked, blank)
	masked = append(masked, words[hi:]...)
	return strings.Join(masked, " ")
}
