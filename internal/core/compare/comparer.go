// Package compare implements the comparison orchestrator: it validates a
// request, normalizes the query and candidates, invokes the scorers and span
// matcher per candidate and packages the ranked results.
package compare

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/baditaflorin/go_ocr_compare/internal/core/score"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
)

// Config holds configuration for the comparison orchestrator.
type Config struct {
	// MinQueryWords is the minimum normalized word count the query text must
	// have; shorter queries fail validation.
	MinQueryWords int
	// MinDocWords filters degenerate candidates: documents whose normalized
	// text has MinDocWords words or fewer are skipped.
	MinDocWords int
	// MinSpanWords is the minimum word count of an emitted common span.
	MinSpanWords int
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		MinQueryWords: 5,
		MinDocWords:   5,
		MinSpanWords:  3,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MinQueryWords < 1 {
		return errors.New("minQueryWords must be at least 1")
	}
	if c.MinDocWords < 0 {
		return errors.New("minDocWords must not be negative")
	}
	if c.MinSpanWords < 1 {
		return errors.New("minSpanWords must be at least 1")
	}
	return nil
}

// Comparer ranks candidate documents against a query text. It performs no
// I/O itself; the optional embedder is the only suspension point and callers
// cancel it through the context passed to Compare.
type Comparer struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	scorer     ports.Scorer
	matcher    ports.SpanMatcher
	embedder   ports.Embedder
}

// NewComparer creates a comparison orchestrator. The embedder may be nil, in
// which case results carry only Jaccard scores.
func NewComparer(config Config, logger ports.Logger, normalizer ports.Normalizer, scorer ports.Scorer, matcher ports.SpanMatcher, embedder ports.Embedder) (*Comparer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}
	if matcher == nil {
		return nil, errors.New("matcher is required")
	}

	return &Comparer{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		scorer:     scorer,
		matcher:    matcher,
		embedder:   embedder,
	}, nil
}

// candidate pairs a surviving document with its normalized text.
type candidate struct {
	doc        domain.Document
	normalized string
}

// Compare validates the request, scores every surviving candidate against the
// query and returns results sorted descending by the primary score (cosine
// when embeddings are available, Jaccard otherwise). Ties keep their relative
// request order. Validation fails fast before any per-document work; a
// per-document computation failure drops that document and continues.
func (c *Comparer) Compare(ctx context.Context, queryText string, documents []domain.Document) ([]domain.SimilarityResult, error) {
	normalizedQuery := c.normalizer.Normalize(queryText)
	queryWords := len(strings.Fields(normalizedQuery))

	c.logger.Debug("Starting comparison",
		"query_words", queryWords,
		"documents", len(documents),
	)

	if queryWords < c.config.MinQueryWords {
		return nil, domain.NewValidationError("text is empty or too short for comparison (%d words, need at least %d)", queryWords, c.config.MinQueryWords)
	}
	if len(documents) == 0 {
		return nil, domain.NewValidationError("no documents supplied for comparison")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	candidates := make([]candidate, 0, len(documents))
	for _, doc := range documents {
		normalized := c.normalizer.Normalize(doc.Text)
		if len(strings.Fields(normalized)) <= c.config.MinDocWords {
			c.logger.Debug("Skipping degenerate document",
				"document_id", doc.ID,
				"fileName", doc.FileName,
			)
			continue
		}
		candidates = append(candidates, candidate{doc: doc, normalized: normalized})
	}
	if len(candidates) == 0 {
		return nil, domain.NewValidationError("no valid documents to compare after filtering")
	}

	embeddings := c.embedCandidates(ctx, normalizedQuery, candidates)

	results := make([]domain.SimilarityResult, 0, len(candidates))
	for i, cand := range candidates {
		jaccard, err := c.scorer.Score(ctx, normalizedQuery, cand.normalized)
		if err != nil {
			c.logger.Error("Scoring failed, dropping document",
				"document_id", cand.doc.ID,
				"scorer", c.scorer.Name(),
				"error", err,
			)
			continue
		}

		result := domain.SimilarityResult{
			DocumentID:  cand.doc.ID,
			FileName:    cand.doc.FileName,
			Jaccard:     jaccard,
			CommonTexts: c.matcher.CommonSpans(normalizedQuery, cand.normalized, c.config.MinSpanWords),
		}
		if embeddings != nil {
			cosine := score.Cosine(embeddings[0], embeddings[i+1])
			result.Cosine = &cosine
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PrimaryScore() > results[j].PrimaryScore()
	})

	c.logger.Debug("Comparison completed",
		"results", len(results),
		"cosine_available", embeddings != nil,
	)
	return results, nil
}

// embedCandidates batches the query and all candidate texts into a single
// embedding call. Any failure degrades the request to Jaccard-only; it is
// logged and never aborts the comparison. The returned slice holds the query
// vector at index 0 followed by one vector per candidate, or nil when the
// cosine path is unavailable.
func (c *Comparer) embedCandidates(ctx context.Context, normalizedQuery string, candidates []candidate) [][]float32 {
	if c.embedder == nil {
		return nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, normalizedQuery)
	for _, cand := range candidates {
		texts = append(texts, cand.normalized)
	}

	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		c.logger.Warn("Embedding backend unavailable, falling back to Jaccard ordering",
			"error", err,
		)
		return nil
	}
	if len(vectors) != len(texts) {
		c.logger.Warn("Embedding backend returned unexpected vector count, falling back to Jaccard ordering",
			"expected", len(texts),
			"got", len(vectors),
		)
		return nil
	}
	return vectors
}
