// Package accuracy exposes ground-truth OCR accuracy metrics: positional
// character error rate and word error rate against a reference transcript.
package accuracy

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_ocr_compare/internal/adapters/logger"
	accuracycore "github.com/baditaflorin/go_ocr_compare/internal/core/accuracy"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
	"github.com/baditaflorin/l"
)

// Metrics computes CER and WER with configurable result precision.
type Metrics struct {
	config Config
}

// Config holds configuration for the accuracy metrics.
type Config struct {
	// Precision is the number of decimal places computed rates are rounded to.
	// A negative precision disables rounding.
	Precision int
	Logger    ports.Logger
}

// Option defines a functional option for configuring the metrics.
type Option func(*Config)

// WithPrecision sets a custom precision for rounding computed rates.
func WithPrecision(p int) Option {
	return func(cfg *Config) {
		cfg.Precision = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// DefaultPrecision is the default number of decimal places for rates.
const DefaultPrecision = 4

// New creates a new Metrics instance with the provided functional options.
func New(opts ...Option) (*Metrics, error) {
	cfg := Config{
		Precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Precision > 15 {
		return nil, errors.New("precision must be at most 15")
	}
	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	return &Metrics{config: cfg}, nil
}

// CharacterErrorRate scores hypothesis against the reference transcript at
// character level. Returns 1.0 when the reference is empty.
func (m *Metrics) CharacterErrorRate(reference, hypothesis string) float64 {
	rate := accuracycore.CharacterErrorRate(reference, hypothesis)
	m.config.Logger.Debug("Computed character error rate",
		"cer", rate,
		"reference_chars", len([]rune(reference)),
	)
	return m.round(rate)
}

// WordErrorRate scores hypothesis against the reference transcript at word
// level. Returns 1.0 when the reference has zero words.
func (m *Metrics) WordErrorRate(reference, hypothesis string) float64 {
	rate := accuracycore.WordErrorRate(reference, hypothesis)
	m.config.Logger.Debug("Computed word error rate",
		"wer", rate,
	)
	return m.round(rate)
}

func (m *Metrics) round(rate float64) float64 {
	if m.config.Precision < 0 {
		return rate
	}
	factor := math.Pow(10, float64(m.config.Precision))
	return math.Round(rate*factor) / factor
}
