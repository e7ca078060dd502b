// Package embedder adapts langchaingo embedding clients to the ports.Embedder
// interface. The underlying model client is created once at startup and is
// safe for concurrent use; inference calls carry no internal cancellation, so
// callers bound them with a context timeout around the whole comparison.
package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangchainEmbedder encodes texts with a langchaingo embeddings client.
type LangchainEmbedder struct {
	name     string
	embedder embeddings.Embedder
}

// NewOllama creates an embedder backed by a local Ollama server. serverURL may
// be empty to use the client default (or the OLLAMA_HOST environment variable).
func NewOllama(model, serverURL string) (*LangchainEmbedder, error) {
	if model == "" {
		return nil, errors.New("embedding model name is required")
	}

	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	emb, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &LangchainEmbedder{name: "ollama", embedder: emb}, nil
}

// NewOpenAI creates an embedder backed by the OpenAI embeddings API. The API
// key is read from the OPENAI_API_KEY environment variable by the client.
func NewOpenAI(model string) (*LangchainEmbedder, error) {
	if model == "" {
		return nil, errors.New("embedding model name is required")
	}

	llm, err := openai.New(openai.WithEmbeddingModel(model))
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	emb, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &LangchainEmbedder{name: "openai", embedder: emb}, nil
}

// Name returns the backing provider name.
func (e *LangchainEmbedder) Name() string {
	return e.name
}

// Embed encodes all texts in a single batched call and returns one vector per
// input, in input order. Failures are wrapped in domain.ErrBackendUnavailable
// so the orchestrator can degrade to the Jaccard-only path.
func (e *LangchainEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBackendUnavailable, e.name, err)
	}
	return vectors, nil
}
