package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_ocr_compare/internal/ports"
)

// WarmupConfig defines configuration for warming up the comparison components.
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     500,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager exercises normalizers, scorers and span matchers before the first
// request so buffer pools are populated and hot paths are JIT-friendly.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	scorers     []ports.Scorer
	matchers    []ports.SpanMatcher
	config      WarmupConfig
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// RegisterScorer adds a scorer to be warmed up.
func (wm *Manager) RegisterScorer(s ports.Scorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterMatcher adds a span matcher to be warmed up.
func (wm *Manager) RegisterMatcher(m ports.SpanMatcher) {
	wm.matchers = append(wm.matchers, m)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.scorers)+len(wm.matchers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	sample := generateSampleText(wm.config.SampleTextSize)
	similar := generateSimilarText(sample, 0.1)
	different := generateSimilarText(sample, 0.5)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}

				for _, n := range wm.normalizers {
					_ = n.Normalize(sample)
				}

				counterpart := similar
				if j%2 == 1 {
					counterpart = different
				}
				for _, s := range wm.scorers {
					_, _ = s.Score(warmupCtx, sample, counterpart)
				}
				for _, m := range wm.matchers {
					_ = m.CommonSpans(sample, counterpart, 3)
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// generateSampleText creates sample text of approximately the given byte size.
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	wordsNeeded := size / 5
	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}

// generateSimilarText replaces a diffRatio share of the words in original.
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)
	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}
	return strings.Join(newWords, " ")
}
