package compare

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/baditaflorin/go_ocr_compare/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/baditaflorin/go_ocr_compare/internal/core/score"
	"github.com/baditaflorin/go_ocr_compare/internal/core/spans"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
)

// nopLogger satisfies ports.Logger without output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

// stubEmbedder returns preset vectors: index 0 for the query, then one per
// candidate in request order.
type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors, nil
}

// failingScorer errors on texts containing a marker word.
type failingScorer struct {
	inner  *score.Jaccard
	marker string
}

func (f *failingScorer) Name() string { return "failing" }

func (f *failingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	if strings.Contains(b, f.marker) {
		return 0, fmt.Errorf("malformed document text")
	}
	return f.inner.Score(ctx, a, b)
}

func newTestComparer(t *testing.T, embedder ports.Embedder) *Comparer {
	t.Helper()
	c, err := NewComparer(DefaultConfig(), nopLogger{}, normalizer.NewDefaultNormalizer(), score.NewJaccard(), spans.NewMatcher(), embedder)
	if err != nil {
		t.Fatalf("failed to build comparer: %v", err)
	}
	return c
}

func doc(id, text string) domain.Document {
	return domain.Document{
		ID:       domain.DocumentID(id),
		FileName: id + ".txt",
		Text:     text,
	}
}

func TestCompareValidation(t *testing.T) {
	tests := []struct {
		name      string
		queryText string
		documents []domain.Document
	}{
		{
			name:      "Empty query",
			queryText: "",
			documents: []domain.Document{doc("d1", "a perfectly valid candidate document text")},
		},
		{
			name:      "Query below five words",
			queryText: "only four words here",
			documents: []domain.Document{doc("d1", "a perfectly valid candidate document text")},
		},
		{
			name:      "No documents",
			queryText: "a query text with enough words to pass",
			documents: nil,
		},
		{
			name:      "All documents degenerate",
			queryText: "a query text with enough words to pass",
			documents: []domain.Document{
				doc("d1", "too short"),
				doc("d2", "exactly five little words here"),
				doc("d3", "!!! ... ???"),
			},
		},
	}

	c := newTestComparer(t, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Compare(context.Background(), tc.queryText, tc.documents)
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if !domain.IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestCompareScenario(t *testing.T) {
	c := newTestComparer(t, nil)

	results, err := c.Compare(context.Background(),
		"The quick brown fox jumps over the lazy dog.",
		[]domain.Document{doc("d1", "A quick brown fox jumps high!")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.DocumentID != "d1" {
		t.Errorf("document_id = %q, want d1", r.DocumentID)
	}
	// Word sets of size 8 and 6 share 4 words over a union of 10.
	if math.Abs(r.Jaccard-0.4) > 1e-9 {
		t.Errorf("jaccard = %v, want 0.4", r.Jaccard)
	}
	if r.Cosine != nil {
		t.Errorf("cosine should be nil without an embedder, got %v", *r.Cosine)
	}

	found := false
	for _, span := range r.CommonTexts {
		if span == "quick brown fox jumps" {
			found = true
		}
	}
	if !found {
		t.Errorf("common_texts = %v, want to contain %q", r.CommonTexts, "quick brown fox jumps")
	}
}

func TestCompareOrderingByJaccard(t *testing.T) {
	c := newTestComparer(t, nil)

	query := "alpha beta gamma delta epsilon zeta"
	results, err := c.Compare(context.Background(), query, []domain.Document{
		doc("low", "one two three four five six"),
		doc("high", "alpha beta gamma delta epsilon six"),
		doc("mid", "alpha beta gamma one two three"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, len(results))
	for i, r := range results {
		got[i] = string(r.DocumentID)
	}
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result order = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Jaccard < results[i].Jaccard {
			t.Errorf("results not descending: %v then %v", results[i-1].Jaccard, results[i].Jaccard)
		}
	}
}

func TestCompareOrderingByCosine(t *testing.T) {
	// Unit vectors whose first component equals the intended cosine
	// similarity against the query vector (1, 0).
	embedder := &stubEmbedder{vectors: [][]float32{
		{1, 0},            // query
		{0.2, 0.97979590}, // candidate scored 0.2
		{0.9, 0.43588989}, // candidate scored 0.9
		{0.5, 0.86602540}, // candidate scored 0.5
	}}
	c := newTestComparer(t, embedder)

	// Identical candidate texts so Jaccard ties and cosine decides the order.
	text := "shared candidate words one two three seven"
	results, err := c.Compare(context.Background(),
		"shared candidate words one two three seven",
		[]domain.Document{doc("p2", text), doc("p9", text), doc("p5", text)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	want := []string{"p9", "p5", "p2"}
	for i := range want {
		if string(results[i].DocumentID) != want[i] {
			t.Fatalf("result order = %v,%v,%v, want %v", results[0].DocumentID, results[1].DocumentID, results[2].DocumentID, want)
		}
	}
	for i, expected := range []float64{0.9, 0.5, 0.2} {
		if results[i].Cosine == nil {
			t.Fatalf("result %d missing cosine", i)
		}
		if math.Abs(*results[i].Cosine-expected) > 1e-3 {
			t.Errorf("result %d cosine = %v, want about %v", i, *results[i].Cosine, expected)
		}
	}
}

func TestCompareStableTieOrdering(t *testing.T) {
	c := newTestComparer(t, nil)

	text := "identical candidate text with many shared words"
	results, err := c.Compare(context.Background(),
		"a long enough query text for validation purposes",
		[]domain.Document{doc("first", text), doc("second", text), doc("third", text)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if string(results[i].DocumentID) != want[i] {
			t.Fatalf("tied results reordered: got %v,%v,%v want %v", results[0].DocumentID, results[1].DocumentID, results[2].DocumentID, want)
		}
	}
}

func TestCompareDegradesWhenEmbedderFails(t *testing.T) {
	embedder := &stubEmbedder{err: fmt.Errorf("%w: connection refused", domain.ErrBackendUnavailable)}
	c := newTestComparer(t, embedder)

	results, err := c.Compare(context.Background(),
		"a long enough query text for validation purposes",
		[]domain.Document{doc("d1", "a long enough candidate text for validation purposes")},
	)
	if err != nil {
		t.Fatalf("embedder failure must not fail the request, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Cosine != nil {
		t.Errorf("cosine should be omitted when the backend is unavailable")
	}
	if results[0].Jaccard <= 0 {
		t.Errorf("jaccard path should stay functional, got %v", results[0].Jaccard)
	}
}

func TestCompareDegradesOnVectorCountMismatch(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float32{{1, 0}}}
	c := newTestComparer(t, embedder)

	results, err := c.Compare(context.Background(),
		"a long enough query text for validation purposes",
		[]domain.Document{doc("d1", "a long enough candidate text for validation purposes")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Cosine != nil {
		t.Errorf("cosine should be omitted on a malformed embedding response")
	}
}

func TestCompareDropsFailingDocuments(t *testing.T) {
	scorer := &failingScorer{inner: score.NewJaccard(), marker: "poison"}
	c, err := NewComparer(DefaultConfig(), nopLogger{}, normalizer.NewDefaultNormalizer(), scorer, spans.NewMatcher(), nil)
	if err != nil {
		t.Fatalf("failed to build comparer: %v", err)
	}

	results, err := c.Compare(context.Background(),
		"a long enough query text for validation purposes",
		[]domain.Document{
			doc("bad", "poison text that the scorer rejects outright"),
			doc("good", "a long enough candidate text for validation purposes"),
		},
	)
	if err != nil {
		t.Fatalf("per-document failure must not abort the batch, got %v", err)
	}
	if len(results) != 1 || results[0].DocumentID != "good" {
		t.Fatalf("expected only the good document, got %+v", results)
	}
}

func TestCompareFiltersDegenerateDocuments(t *testing.T) {
	c := newTestComparer(t, nil)

	results, err := c.Compare(context.Background(),
		"a long enough query text for validation purposes",
		[]domain.Document{
			doc("short", "five words is too few"),
			doc("kept", "a long enough candidate text for validation purposes"),
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].DocumentID != "kept" {
		t.Fatalf("expected only the kept document, got %+v", results)
	}
}

func TestCompareCancelledContext(t *testing.T) {
	c := newTestComparer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Compare(ctx,
		"a long enough query text for validation purposes",
		[]domain.Document{doc("d1", "a long enough candidate text for validation purposes")},
	)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
