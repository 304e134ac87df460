// Package generator turns document text into multiple-choice questions:
// chunked annotation, sentence sampling, target selection, stem building,
// and similarity-ranked distractor selection.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/mondai/internal/annotate"
	"github.com/hyperjump/mondai/internal/config"
	"github.com/hyperjump/mondai/internal/embedding"
	"github.com/hyperjump/mondai/internal/models"
	"github.com/hyperjump/mondai/pkg/utils"
)

// Generator generates quizzes from raw text. The annotator and embedder are
// injected so tests can run with deterministic fakes; the rand source is
// injected so sampling, shuffling, and fallback draws are seedable.
type Generator struct {
	annotator annotate.Annotator
	embedder  embedding.Embedder
	cfg       *config.GenerateConfig
	rng       *rand.Rand
	logger    *zap.Logger // optional; when set, logs debug events
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a logger for debug output (skipped sentences, pool sizes, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRand sets the random source used for sampling, shuffling, and fallback draws.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// NewGenerator creates a generator with the given dependencies.
func NewGenerator(annotator annotate.Annotator, embedder embedding.Embedder, cfg *config.GenerateConfig, opts ...Option) *Generator {
	g := &Generator{
		annotator: annotator,
		embedder:  embedder,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Generate produces up to numQuestions MCQs from text at the given difficulty.
// Sentences that yield no usable target are skipped, so the result may hold
// fewer questions than requested; empty input yields an empty quiz. Annotator
// or embedder failures abort the whole request.
func (g *Generator) Generate(ctx context.Context, text string, numQuestions int, difficulty models.Difficulty) (*models.Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = g.cfg.DefaultQuestions
	}
	quiz := &models.Quiz{
		ID:         uuid.New().String(),
		Difficulty: difficulty,
		Questions:  []models.MCQ{},
		CreatedAt:  time.Now(),
	}
	if strings.TrimSpace(text) == "" {
		return quiz, nil
	}

	sentences, p, err := g.annotateDocument(ctx, text)
	if err != nil {
		return nil, err
	}
	if g.logger != nil {
		g.logger.Debug("document annotated",
			zap.Int("sentences", len(sentences)),
			zap.Int("entities", len(p.entities)),
			zap.Int("nouns", len(p.nouns)),
		)
	}

	for _, idx := range g.sample(len(sentences), numQuestions) {
		mcq, err := g.buildQuestion(ctx, sentences[idx], difficulty, p)
		if err != nil {
			return nil, err
		}
		if mcq == nil {
			if g.logger != nil {
				g.logger.Debug("sentence skipped, no usable target",
					zap.String("sentence", utils.Truncate(sentences[idx], 80)))
			}
			continue
		}
		quiz.Questions = append(quiz.Questions, *mcq)
	}
	quiz.TotalQuestions = len(quiz.Questions)
	return quiz, nil
}

// annotateDocument chunks the text to stay within annotator limits and merges
// per-chunk results into whole-document sentence, entity, and noun pools.
func (g *Generator) annotateDocument(ctx context.Context, text string) ([]string, *pools, error) {
	p := &pools{}
	var sentences []string
	for i, chunk := range SplitChunks(text, g.cfg.MaxChunkChars) {
		ann, err := g.annotator.Annotate(ctx, chunk)
		if err != nil {
			return nil, nil, fmt.Errorf("annotate chunk %d: %w", i, err)
		}
		sentences = append(sentences, ann.Sentences...)
		p.entities = append(p.entities, ann.Entities...)
		p.nouns = append(p.nouns, ann.Nouns...)
	}
	return sentences, p, nil
}

// sample draws min(k, n) indices from [0, n) without replacement.
func (g *Generator) sample(n, k int) []int {
	if k > n {
		k = n
	}
	return g.rng.Perm(n)[:k]
}

// buildQuestion turns one sentence into an MCQ, or returns nil when the
// sentence has no usable target.
func (g *Generator) buildQuestion(ctx context.Context, sentence string, difficulty models.Difficulty, p *pools) (*models.MCQ, error) {
	ann, err := g.annotator.Annotate(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("annotate sentence: %w", err)
	}
	target, ok := SelectTarget(ann)
	if !ok {
		return nil, nil
	}

	stem := BuildStem(sentence, target, difficulty, g.cfg.Blank)
	distractors, err := g.distractors(ctx, target, difficulty, p)
	if err != nil {
		return nil, err
	}

	choices, answer := g.assemble(target.Text, distractors)
	return &models.MCQ{Stem: stem, Choices: choices, Answer: answer}, nil
}

// assemble shuffles the target in among the distractors and returns the
// choices with the letter (A-D) of the target's position.
func (g *Generator) assemble(target string, distractors []string) ([]string, string) {
	choices := append([]string{target}, distractors...)
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	for i, c := range choices {
		if c == target {
			return choices, string(rune('A' + i))
		}
	}
	// Unreachable: the target is always one of the choices.
	return choices, "A"
}
