package generator

import "github.com/hyperjump/mondai/internal/annotate"

// targetLabels is the entity type allow-list for quiz targets. GPE covers
// geopolitical locations; LOC/ORGANIZATION spellings vary by annotator.
var targetLabels = map[string]bool{
	"PERSON":       true,
	"ORG":          true,
	"ORGANIZATION": true,
	"GPE":          true,
	"LOC":          true,
	"LOCATION":     true,
	"DATE":         true,
}

// Target is the answer chosen for one sentence. Label is empty when the
// target came from the noun fallback rather than a named entity.
type Target struct {
	Text  string
	Label string
}

// SelectTarget picks the quiz target from a sentence's annotation: the first
// entity with an allowed label, else the first noun. Returns false when the
// sentence has neither, in which case it yields no question.
func SelectTarget(ann *annotate.Annotation) (Target, bool) {
	for _, e := range ann.Entities {
		if targetLabels[e.Label] {
			return Target{Text: e.Text, Label: e.Label}, true
		}
	}
	if len(ann.Nouns) > 0 {
		return Target{Text: ann.Nouns[0]}, true
	}
	return Target{}, false
}
