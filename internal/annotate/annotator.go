// Package annotate wraps linguistic annotation: sentence segmentation,
// named-entity recognition, and noun extraction from part-of-speech tags.
package annotate

import "context"

// Entity is a named text span with a semantic type label (e.g. PERSON, GPE).
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Annotation holds the linguistic analysis of one piece of text.
// Sentences, Entities, and Nouns preserve left-to-right appearance order,
// which downstream selection relies on as a stable contract.
type Annotation struct {
	Sentences []string
	Entities  []Entity
	Nouns     []string
}

// Annotator produces an Annotation for a piece of text. Implementations
// must be safe for concurrent use once constructed.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}
