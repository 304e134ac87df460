package annotate

import (
	"context"
	"strings"
)

// FakeAnnotator is a deterministic Annotator for tests. Sentences split on
// sentence-final punctuation; entities and nouns are matched word-by-word
// against configured vocabularies, preserving appearance order.
type FakeAnnotator struct {
	// EntityLabels maps entity text to its label (e.g. "Paris" -> "GPE").
	EntityLabels map[string]string
	// NounWords marks which words count as nouns.
	NounWords map[string]bool
	// Err, when set, is returned from every Annotate call.
	Err error
}

// Annotate produces a rule-based annotation of text.
func (f *FakeAnnotator) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	ann := &Annotation{Sentences: splitSentences(text)}
	for _, word := range strings.Fields(text) {
		w := strings.Trim(word, ".,!?;:\"'()")
		if w == "" {
			continue
		}
		if label, ok := f.EntityLabels[w]; ok {
			ann.Entities = append(ann.Entities, Entity{Text: w, Label: label})
		}
		if f.NounWords[w] {
			ann.Nouns = append(ann.Nouns, w)
		}
	}
	return ann, nil
}

// splitSentences breaks text after '.', '!' or '?'. Good enough for fixtures;
// real segmentation is the prose pipeline's job.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(string(runes[start : i+1]))
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
