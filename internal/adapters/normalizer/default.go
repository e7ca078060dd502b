package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_ocr_compare/internal/ports"
	"golang.org/x/text/unicode/norm"
)

// DefaultNormalizer implements the canonical text normalization used before
// any comparison: Unicode canonical composition (NFKC) so visually identical
// glyphs compare equal, removal of every character that is neither
// alphanumeric nor whitespace, lower-casing, and whitespace collapsing.
// Pure and total: empty input yields empty output, and the function is
// idempotent.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize canonicalizes raw text for comparison.
func (n *DefaultNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)

	var sb strings.Builder
	sb.Grow(len(text))
	lastWasSpace := true // also trims leading whitespace
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				sb.WriteByte(' ')
				lastWasSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		default:
			// Punctuation and symbols are dropped entirely; word boundaries
			// come from whitespace alone.
		}
	}

	return strings.TrimSuffix(sb.String(), " ")
}
