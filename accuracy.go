// accuracy.go
// Ground-truth OCR accuracy metrics. Both rates are positional: mismatches at
// aligned positions plus the absolute length difference, over the reference
// length. They are not edit-distance CER/WER.
package ocrcompare

import (
	"github.com/baditaflorin/go_ocr_compare/internal/core/accuracy"
)

// CharacterErrorRate scores hypothesis against the reference transcript at
// character level. Returns 1.0 when the reference is empty.
func CharacterErrorRate(reference, hypothesis string) float64 {
	return accuracy.CharacterErrorRate(reference, hypothesis)
}

// WordErrorRate scores hypothesis against the reference transcript at word
// level. Returns 1.0 when the reference has zero words.
func WordErrorRate(reference, hypothesis string) float64 {
	return accuracy.WordErrorRate(reference, hypothesis)
}
