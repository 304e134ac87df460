package annotate

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// nounTags are the Penn Treebank tags counted as common nouns.
// Proper nouns (NNP, NNPS) surface through entity recognition instead.
var nounTags = map[string]bool{
	"NN":  true,
	"NNS": true,
}

// ProseAnnotator annotates text with the prose NLP pipeline. The underlying
// model is loaded by the library on first use and shared across calls.
type ProseAnnotator struct{}

// NewProseAnnotator returns a prose-backed Annotator.
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Annotate runs segmentation, tagging, and entity extraction on text.
func (a *ProseAnnotator) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("annotate text: %w", err)
	}

	ann := &Annotation{}
	for _, s := range doc.Sentences() {
		ann.Sentences = append(ann.Sentences, s.Text)
	}
	for _, e := range doc.Entities() {
		ann.Entities = append(ann.Entities, Entity{Text: e.Text, Label: e.Label})
	}
	for _, tok := range doc.Tokens() {
		if IsNounTag(tok.Tag) {
			ann.Nouns = append(ann.Nouns, tok.Text)
		}
	}
	return ann, nil
}

// IsNounTag reports whether a part-of-speech tag marks a common noun.
func IsNounTag(tag string) bool {
	return nounTags[tag]
}
