package models

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":   DifficultyEasy,
		"Easy":   DifficultyEasy,
		"MEDIUM": DifficultyMedium,
		" hard ": DifficultyHard,
		"Medium": DifficultyMedium,
	}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil {
			t.Errorf("ParseDifficulty(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDifficulty(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseDifficulty_Invalid(t *testing.T) {
	for _, in := range []string{"", "impossible", "extreme"} {
		if _, err := ParseDifficulty(in); err == nil {
			t.Errorf("ParseDifficulty(%q): expected error", in)
		}
	}
}

func TestMCQ_CorrectChoice(t *testing.T) {
	q := &MCQ{
		Stem:    "_______ is the capital of France.",
		Choices: []string{"Lyon", "Paris", "Berlin", "Tokyo"},
		Answer:  "B",
	}
	if got := q.CorrectChoice(); got != "Paris" {
		t.Errorf("CorrectChoice() = %q, want Paris", got)
	}
}

func TestMCQ_CorrectChoice_OutOfRange(t *testing.T) {
	q := &MCQ{Choices: []string{"a", "b"}, Answer: "Z"}
	if got := q.CorrectChoice(); got != "" {
		t.Errorf("CorrectChoice() = %q, want empty", got)
	}
	q = &MCQ{Choices: []string{"a"}, Answer: ""}
	if got := q.CorrectChoice(); got != "" {
		t.Errorf("CorrectChoice() = %q, want empty", got)
	}
}
