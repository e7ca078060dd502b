// Package accuracy computes character and word error rates of OCR output
// against a known ground-truth transcript.
//
// Both metrics are positional: characters (or words) are compared at aligned
// positions and the absolute length difference is added as a penalty. This is
// not edit-distance CER/WER, so insertions and deletions that shift the
// alignment are overcounted. Callers depend on the numeric outputs staying
// this way.
package accuracy

import "strings"

// CharacterErrorRate returns the rate of character positions where reference
// and hypothesis differ, plus the absolute length difference, divided by the
// reference length. Returns 1.0 when the reference is empty. Lengths are
// measured in runes so multi-byte scripts are counted per character.
func CharacterErrorRate(reference, hypothesis string) float64 {
	refRunes := []rune(reference)
	hypRunes := []rune(hypothesis)
	if len(refRunes) == 0 {
		return 1.0
	}

	errors := positionalMismatches(refRunes, hypRunes)
	return float64(errors) / float64(len(refRunes))
}

// WordErrorRate is the word-level analogue of CharacterErrorRate, computed
// over whitespace-tokenized words. Returns 1.0 when the reference has zero
// words.
func WordErrorRate(reference, hypothesis string) float64 {
	refWords := strings.Fields(reference)
	hypWords := strings.Fields(hypothesis)
	if len(refWords) == 0 {
		return 1.0
	}

	errors := positionalMismatches(refWords, hypWords)
	return float64(errors) / float64(len(refWords))
}

// positionalMismatches counts differing elements at aligned positions plus
// the absolute difference in lengths.
func positionalMismatches[T comparable](ref, hyp []T) int {
	n := len(ref)
	if len(hyp) < n {
		n = len(hyp)
	}

	errors := 0
	for i := 0; i < n; i++ {
		if ref[i] != hyp[i] {
			errors++
		}
	}

	diff := len(ref) - len(hyp)
	if diff < 0 {
		diff = -diff
	}
	return errors + diff
}
