package ports

import "context"

// Embedder encodes texts into fixed-size dense vectors using a shared
// pretrained model. Implementations are loaded once at startup and must be
// safe for concurrent read access across in-flight requests.
//
// Embed returns one vector per input text, in input order. All candidate
// texts of a comparison request are batched into a single call.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
