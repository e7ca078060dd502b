package accuracy

import (
	"testing"
)

func TestMetricsRounding(t *testing.T) {
	m, err := New(WithPrecision(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 mismatch over 3 characters rounds to 0.33.
	if got := m.CharacterErrorRate("abc", "abd"); got != 0.33 {
		t.Errorf("CharacterErrorRate = %v, want 0.33", got)
	}
	// 1 substitution over 3 words rounds to 0.33.
	if got := m.WordErrorRate("one two three", "one two tree"); got != 0.33 {
		t.Errorf("WordErrorRate = %v, want 0.33", got)
	}
}

func TestMetricsEdgeCases(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := m.CharacterErrorRate("", "anything"); got != 1.0 {
		t.Errorf("empty reference CER = %v, want 1.0", got)
	}
	if got := m.WordErrorRate("", "anything"); got != 1.0 {
		t.Errorf("empty reference WER = %v, want 1.0", got)
	}
	if got := m.CharacterErrorRate("same", "same"); got != 0.0 {
		t.Errorf("identical CER = %v, want 0.0", got)
	}
}

func TestNewRejectsAbsurdPrecision(t *testing.T) {
	if _, err := New(WithPrecision(42)); err == nil {
		t.Error("expected an error for precision 42")
	}
}
