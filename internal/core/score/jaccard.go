package score

import (
	"context"
	"strings"
)

// Jaccard computes the set-based Jaccard similarity between two normalized
// texts: intersection size over union size of their word sets. Order and
// repetition are ignored. Cheap, deterministic and dependency-free, which
// makes it the always-available scorer the orchestrator can fall back on.
type Jaccard struct{}

// NewJaccard creates a Jaccard scorer.
func NewJaccard() *Jaccard {
	return &Jaccard{}
}

// Name returns the metric name.
func (j *Jaccard) Name() string {
	return "jaccard"
}

// Score returns |A ∩ B| / |A ∪ B| over the word sets of a and b.
// Returns 0.0 when the union is empty. Symmetric and bounded in [0,1].
func (j *Jaccard) Score(_ context.Context, a, b string) (float64, error) {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0, nil
	}
	return float64(intersection) / float64(union), nil
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
