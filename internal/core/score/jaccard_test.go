package score

import (
	"context"
	"math"
	"testing"
)

func TestJaccardScore(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "Identical texts",
			a:        "the quick brown fox",
			b:        "the quick brown fox",
			expected: 1.0,
		},
		{
			name: "Spec scenario",
			// 8-word set vs 6-word set, 4 shared words, union of 10.
			a:        "the quick brown fox jumps over the lazy dog",
			b:        "a quick brown fox jumps high",
			expected: 0.4,
		},
		{
			name:     "Disjoint texts",
			a:        "alpha beta gamma",
			b:        "delta epsilon zeta",
			expected: 0.0,
		},
		{
			name:     "Repetition ignored",
			a:        "word word word",
			b:        "word",
			expected: 1.0,
		},
		{
			name:     "Order ignored",
			a:        "one two three",
			b:        "three two one",
			expected: 1.0,
		},
		{
			name:     "Both empty",
			a:        "",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "One empty",
			a:        "some words here",
			b:        "",
			expected: 0.0,
		},
	}

	scorer := NewJaccard()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestJaccardSymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "a quick brown fox jumps"},
		{"alpha beta", "beta gamma delta"},
		{"hello world", "hello world"},
		{"", "something"},
	}

	scorer := NewJaccard()
	for _, p := range pairs {
		ab, _ := scorer.Score(context.Background(), p[0], p[1])
		ba, _ := scorer.Score(context.Background(), p[1], p[0])
		if ab != ba {
			t.Errorf("jaccard(%q,%q)=%v but jaccard(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("jaccard(%q,%q)=%v out of [0,1]", p[0], p[1], ab)
		}
	}
}
