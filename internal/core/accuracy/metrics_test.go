package accuracy

import (
	"math"
	"testing"
)

func TestCharacterErrorRate(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		hypothesis string
		expected   float64
	}{
		{
			name:       "Identical strings",
			reference:  "hello",
			hypothesis: "hello",
			expected:   0.0,
		},
		{
			name:       "Empty hypothesis",
			reference:  "hello",
			hypothesis: "",
			expected:   1.0,
		},
		{
			name:       "Empty reference",
			reference:  "",
			hypothesis: "anything",
			expected:   1.0,
		},
		{
			name:       "Both empty",
			reference:  "",
			hypothesis: "",
			expected:   1.0,
		},
		{
			name:       "Single substitution",
			reference:  "hello",
			hypothesis: "hallo",
			expected:   0.2,
		},
		{
			name: "Length difference penalized",
			// 0 aligned mismatches plus 2 extra characters over 5.
			reference:  "hello",
			hypothesis: "helloxx",
			expected:   0.4,
		},
		{
			name: "Shifted alignment overcounts",
			// Positional comparison, not edit distance: the leading insertion
			// misaligns every following character.
			reference:  "abcd",
			hypothesis: "xabcd",
			expected:   1.25,
		},
		{
			name:       "Multibyte counted per rune",
			reference:  "việt",
			hypothesis: "viet",
			expected:   0.25,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CharacterErrorRate(tc.reference, tc.hypothesis)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("CharacterErrorRate(%q, %q) = %v, want %v", tc.reference, tc.hypothesis, got, tc.expected)
			}
		})
	}
}

func TestWordErrorRate(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		hypothesis string
		expected   float64
	}{
		{
			name:       "Identical transcripts",
			reference:  "the quick brown fox",
			hypothesis: "the quick brown fox",
			expected:   0.0,
		},
		{
			name:       "Empty reference",
			reference:  "   ",
			hypothesis: "whatever",
			expected:   1.0,
		},
		{
			name:       "One substitution in four words",
			reference:  "the quick brown fox",
			hypothesis: "the quick brown cat",
			expected:   0.25,
		},
		{
			name:       "Missing trailing word",
			reference:  "the quick brown fox",
			hypothesis: "the quick brown",
			expected:   0.25,
		},
		{
			name: "Extra words penalized",
			// 0 aligned mismatches plus 2 extra words over 2.
			reference:  "hello world",
			hypothesis: "hello world extra words",
			expected:   1.0,
		},
		{
			name:       "Whitespace runs do not create words",
			reference:  "a  b   c",
			hypothesis: "a b c",
			expected:   0.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WordErrorRate(tc.reference, tc.hypothesis)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("WordErrorRate(%q, %q) = %v, want %v", tc.reference, tc.hypothesis, got, tc.expected)
			}
		})
	}
}
