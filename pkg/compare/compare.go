// Package compare exposes the document comparison engine: given one query
// text and a set of candidate documents, it ranks candidates by similarity
// (set-based Jaccard, plus embedding-based cosine when an embedding backend
// is configured) and reports the contiguous word spans the texts share.
package compare

import (
	"context"

	"github.com/baditaflorin/go_ocr_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_ocr_compare/internal/adapters/normalizer"
	comparecore "github.com/baditaflorin/go_ocr_compare/internal/core/compare"
	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/baditaflorin/go_ocr_compare/internal/core/score"
	"github.com/baditaflorin/go_ocr_compare/internal/core/spans"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
	"github.com/baditaflorin/go_ocr_compare/internal/warmup"
	"github.com/baditaflorin/l"
)

// Document is a candidate reference document.
type Document = domain.Document

// DocumentID is an opaque document identifier.
type DocumentID = domain.DocumentID

// SimilarityResult holds the scores and common spans for one candidate.
type SimilarityResult = domain.SimilarityResult

// Comparer ranks candidate documents against a query text.
type Comparer struct {
	core       *comparecore.Comparer
	logger     ports.Logger
	normalizer ports.Normalizer
	scorer     ports.Scorer
	matcher    ports.SpanMatcher
	warmed     bool
}

// Option defines a functional option for configuring the Comparer.
type Option func(*config)

type config struct {
	MinQueryWords int
	MinDocWords   int
	MinSpanWords  int
	Logger        ports.Logger
	Normalizer    ports.Normalizer
	Embedder      ports.Embedder
	WarmUp        bool
	WarmUpConfig  warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the ASCII-table normalizer with pooled buffers.
func WithOptimizedNormalizer() Option {
	return func(cfg *config) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithEmbedder enables the cosine scorer with the given embedding backend.
func WithEmbedder(e ports.Embedder) Option {
	return func(cfg *config) {
		cfg.Embedder = e
	}
}

// WithMinQueryWords sets the minimum normalized word count of a valid query.
func WithMinQueryWords(n int) Option {
	return func(cfg *config) {
		cfg.MinQueryWords = n
	}
}

// WithMinDocumentWords sets the degenerate-candidate filter: documents with
// this many normalized words or fewer are skipped.
func WithMinDocumentWords(n int) Option {
	return func(cfg *config) {
		cfg.MinDocWords = n
	}
}

// WithMinSpanWords sets the minimum word count of an emitted common span.
func WithMinSpanWords(n int) Option {
	return func(cfg *config) {
		cfg.MinSpanWords = n
	}
}

// WithWarmUp enables component warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new Comparer with the provided functional options.
// Without WithEmbedder the comparer runs Jaccard-only.
func New(opts ...Option) (*Comparer, error) {
	defaults := comparecore.DefaultConfig()

	cfg := &config{
		MinQueryWords: defaults.MinQueryWords,
		MinDocWords:   defaults.MinDocWords,
		MinSpanWords:  defaults.MinSpanWords,
		WarmUpConfig:  warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	scorer := score.NewJaccard()
	matcher := spans.NewMatcher()

	core, err := comparecore.NewComparer(
		comparecore.Config{
			MinQueryWords: cfg.MinQueryWords,
			MinDocWords:   cfg.MinDocWords,
			MinSpanWords:  cfg.MinSpanWords,
		},
		cfg.Logger,
		cfg.Normalizer,
		scorer,
		matcher,
		cfg.Embedder,
	)
	if err != nil {
		return nil, err
	}

	c := &Comparer{
		core:       core,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
		scorer:     scorer,
		matcher:    matcher,
	}

	if cfg.WarmUp {
		c.WarmUp(context.Background(), cfg.WarmUpConfig)
	}
	return c, nil
}

// Compare ranks documents against queryText. It returns a
// *domain.ValidationError (test with errors.As) when the query is too short,
// no documents are supplied, or every document is filtered as degenerate.
func (c *Comparer) Compare(ctx context.Context, queryText string, documents []Document) ([]SimilarityResult, error) {
	return c.core.Compare(ctx, queryText, documents)
}

// WarmUp exercises the comparison components ahead of the first request.
func (c *Comparer) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if c.warmed {
		c.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(c.logger, config)
	mgr.RegisterNormalizer(c.normalizer)
	mgr.RegisterScorer(c.scorer)
	mgr.RegisterMatcher(c.matcher)
	mgr.WarmUp(ctx)
	c.warmed = true
}
