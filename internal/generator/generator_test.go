package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/hyperjump/mondai/internal/annotate"
	"github.com/hyperjump/mondai/internal/config"
	"github.com/hyperjump/mondai/internal/embedding"
	"github.com/hyperjump/mondai/internal/models"
)

func fixtureAnnotator() *annotate.FakeAnnotator {
	return &annotate.FakeAnnotator{
		EntityLabels: map[string]string{
			"Paris":  "GPE",
			"France": "GPE",
			"Tokyo":  "GPE",
			"Japan":  "GPE",
		},
		NounWords: map[string]bool{
			"capital": true, "landmark": true, "tower": true, "country": true,
		},
	}
}

func newTestGenerator(ann annotate.Annotator, seed int64) *Generator {
	cfg := &config.GenerateConfig{MaxChunkChars: 80000, DefaultQuestions: 5, Blank: "_______"}
	return NewGenerator(ann, embedding.NewMockEmbedder(16), cfg,
		WithRand(rand.New(rand.NewSource(seed))))
}

const fixtureText = "Paris is the capital of France. The Eiffel Tower is a famous landmark. " +
	"Tokyo is the capital of Japan. Every country has a capital."

func TestGenerate_Invariants(t *testing.T) {
	g := newTestGenerator(fixtureAnnotator(), 42)
	quiz, err := g.Generate(context.Background(), fixtureText, 4, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) == 0 {
		t.Fatal("expected at least one question")
	}
	if quiz.ID == "" {
		t.Error("quiz ID should be set")
	}
	if quiz.TotalQuestions != len(quiz.Questions) {
		t.Errorf("TotalQuestions=%d, len=%d", quiz.TotalQuestions, len(quiz.Questions))
	}
	for qi, q := range quiz.Questions {
		if len(q.Choices) != 4 {
			t.Fatalf("q%d: expected 4 choices, got %v", qi, q.Choices)
		}
		seen := map[string]bool{}
		for _, c := range q.Choices {
			if seen[c] {
				t.Errorf("q%d: duplicate choice %q", qi, c)
			}
			seen[c] = true
		}
		if q.Answer < "A" || q.Answer > "D" {
			t.Errorf("q%d: bad answer letter %q", qi, q.Answer)
		}
		correct := q.CorrectChoice()
		if correct == "" {
			t.Errorf("q%d: answer letter does not index a choice", qi)
		}
		count := 0
		for _, c := range q.Choices {
			if c == correct {
				count++
			}
		}
		if count != 1 {
			t.Errorf("q%d: correct choice appears %d times", qi, count)
		}
	}
}

func TestGenerate_MediumScenario(t *testing.T) {
	ann := &annotate.FakeAnnotator{
		EntityLabels: map[string]string{"Paris": "GPE", "France": "GPE"},
		NounWords:    map[string]bool{"capital": true, "landmark": true},
	}
	g := newTestGenerator(ann, 7)
	quiz, err := g.Generate(context.Background(),
		"Paris is the capital of France. The Eiffel Tower is a famous landmark.",
		1, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected exactly 1 question, got %d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if strings.Count(q.Stem, "_______") != 1 {
		t.Errorf("expected a single blank in stem: %q", q.Stem)
	}
	if len(q.Choices) != 4 {
		t.Errorf("expected 4 choices: %v", q.Choices)
	}
}

func TestGenerate_EasyMasksTarget(t *testing.T) {
	g := newTestGenerator(fixtureAnnotator(), 11)
	quiz, err := g.Generate(context.Background(), fixtureText, 4, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for qi, q := range quiz.Questions {
		if strings.Contains(q.Stem, q.CorrectChoice()) {
			t.Errorf("q%d: easy stem contains answer %q: %q", qi, q.CorrectChoice(), q.Stem)
		}
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	g := newTestGenerator(fixtureAnnotator(), 1)
	quiz, err := g.Generate(context.Background(), "   \n\t ", 5, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) != 0 {
		t.Errorf("expected empty quiz, got %d questions", len(quiz.Questions))
	}
}

func TestGenerate_FewerSentencesThanRequested(t *testing.T) {
	g := newTestGenerator(fixtureAnnotator(), 5)
	quiz, err := g.Generate(context.Background(),
		"Paris is the capital of France. Tokyo is the capital of Japan.",
		10, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) > 2 {
		t.Errorf("expected at most 2 questions, got %d", len(quiz.Questions))
	}
}

func TestGenerate_SkipsSentencesWithoutTargets(t *testing.T) {
	// Nothing in this text is an entity or noun for the fake annotator.
	g := newTestGenerator(&annotate.FakeAnnotator{}, 9)
	quiz, err := g.Generate(context.Background(), "Nothing here. Nothing there.", 2, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) != 0 {
		t.Errorf("expected 0 questions, got %d", len(quiz.Questions))
	}
}

func TestGenerate_AnnotatorErrorPropagates(t *testing.T) {
	g := newTestGenerator(&annotate.FakeAnnotator{Err: errors.New("pipeline unavailable")}, 1)
	if _, err := g.Generate(context.Background(), "Some text.", 1, models.DifficultyEasy); err == nil {
		t.Fatal("expected annotator error to propagate")
	}
}

func TestGenerate_DeterministicWithSeed(t *testing.T) {
	a := newTestGenerator(fixtureAnnotator(), 123)
	b := newTestGenerator(fixtureAnnotator(), 123)
	qa, err := a.Generate(context.Background(), fixtureText, 3, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	qb, _ := b.Generate(context.Background(), fixtureText, 3, models.DifficultyMedium)
	if len(qa.Questions) != len(qb.Questions) {
		t.Fatalf("question counts differ: %d vs %d", len(qa.Questions), len(qb.Questions))
	}
	for i := range qa.Questions {
		if qa.Questions[i].Stem != qb.Questions[i].Stem {
			t.Errorf("q%d stems differ", i)
		}
		for j := range qa.Questions[i].Choices {
			if qa.Questions[i].Choices[j] != qb.Questions[i].Choices[j] {
				t.Errorf("q%d choice %d differs", i, j)
			}
		}
	}
}
