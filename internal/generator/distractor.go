package generator

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperjump/mondai/internal/annotate"
	"github.com/hyperjump/mondai/internal/embedding"
	"github.com/hyperjump/mondai/internal/models"
)

// numDistractors is the number of wrong choices per question.
const numDistractors = 3

// fallbackChoice is the filler used when the document has no material left
// to draw a distractor from.
const fallbackChoice = "Option"

// pools holds the document-wide entity and noun collections built during
// chunk annotation. They are read-only once built.
type pools struct {
	entities []annotate.Entity
	nouns    []string
}

// candidatePool builds the initial distractor candidate pool, gated by
// difficulty and the target's label. Candidates are distinct and keep their
// left-to-right appearance order.
func candidatePool(t Target, difficulty models.Difficulty, p *pools) []string {
	if difficulty == models.DifficultyEasy {
		return entityTexts(p.entities, "", t.Text)
	}
	if t.Label != "" {
		return entityTexts(p.entities, t.Label, t.Text)
	}
	return distinctExcluding(p.nouns, t.Text)
}

// combinedPool returns all distinct entity and noun texts except the
// excluded ones. This is the broadening and fallback material.
func combinedPool(p *pools, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	var out []string
	for _, e := range p.entities {
		if !skip[e.Text] {
			skip[e.Text] = true
			out = append(out, e.Text)
		}
	}
	for _, n := range p.nouns {
		if !skip[n] {
			skip[n] = true
			out = append(out, n)
		}
	}
	return out
}

// entityTexts returns distinct entity texts, filtered to label when label is
// non-empty, excluding the target text.
func entityTexts(entities []annotate.Entity, label, exclude string) []string {
	seen := map[string]bool{exclude: true}
	var out []string
	for _, e := range entities {
		if label != "" && e.Label != label {
			continue
		}
		if !seen[e.Text] {
			seen[e.Text] = true
			out = append(out, e.Text)
		}
	}
	return out
}

// distinctExcluding returns the distinct texts in order, minus exclude.
func distinctExcluding(texts []string, exclude string) []string {
	seen := map[string]bool{exclude: true}
	var out []string
	for _, t := range texts {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// distractors produces exactly numDistractors distinct wrong choices for the
// target: candidate pool -> broadening -> similarity ranking -> random
// fallback -> placeholder. Only embedding failures propagate.
func (g *Generator) distractors(ctx context.Context, t Target, difficulty models.Difficulty, p *pools) ([]string, error) {
	candidates := candidatePool(t, difficulty, p)
	if len(candidates) < numDistractors {
		candidates = broaden(candidates, combinedPool(p, t.Text))
	}

	picked, err := g.rankBySimilarity(ctx, t.Text, candidates)
	if err != nil {
		return nil, err
	}

	for len(picked) < numDistractors {
		pool := combinedPool(p, append([]string{t.Text}, picked...)...)
		if len(pool) == 0 {
			picked = append(picked, placeholder(t.Text, picked))
			continue
		}
		picked = append(picked, pool[g.rng.Intn(len(pool))])
	}

	// Defensive dedupe before trimming; the steps above already keep picks distinct.
	picked = distinctExcluding(picked, t.Text)
	return picked[:numDistractors], nil
}

// broaden unions candidates with extra material, keeping order and distinctness.
func broaden(candidates, extra []string) []string {
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c] = true
	}
	out := candidates
	for _, e := range extra {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// rankBySimilarity orders candidates by descending cosine similarity to the
// target and returns up to numDistractors of them. Ties keep candidate order,
// so ranking is reproducible for a fixed embedder.
func (g *Generator) rankBySimilarity(ctx context.Context, target string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	targetEmb, err := g.embedder.Embed(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("embed target: %w", err)
	}
	candEmbs, err := g.embedder.EmbedBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}

	ranked := make([]string, len(candidates))
	copy(ranked, candidates)
	scores := make(map[string]float64, len(candidates))
	for i, c := range candidates {
		scores[c] = embedding.Cosine(targetEmb, candEmbs[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	var picked []string
	for _, c := range ranked {
		if c == target {
			continue
		}
		picked = append(picked, c)
		if len(picked) == numDistractors {
			break
		}
	}
	return picked, nil
}

// placeholder returns a filler choice distinct from the target and the
// already-picked distractors, so the final choice list stays 4 distinct strings.
func placeholder(target string, picked []string) string {
	taken := map[string]bool{target: true}
	for _, p := range picked {
		taken[p] = true
	}
	if !taken[fallbackChoice] {
		return fallbackChoice
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s %d", fallbackChoice, i)
		if !taken[name] {
			return name
		}
	}
}
