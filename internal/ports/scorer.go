package ports

import "context"

// Scorer defines the interface for computing a similarity score between two
// normalized texts. Implementations must be pure with respect to their inputs
// and safe for concurrent use.
type Scorer interface {
	Name() string
	Score(ctx context.Context, a, b string) (float64, error)
}
