// compare.go
// Package ocrcompare compares OCR-extracted text against a corpus of reference
// documents to surface near-duplicate or overlapping passages. Candidates are
// ranked by set-based Jaccard similarity over word sets and, when an embedding
// backend is configured, by cosine similarity over dense sentence embeddings.
// Every result carries the contiguous word spans the two texts share,
// extracted with a greedy longest-matching-block decomposition.
//
// This package is the convenience surface. pkg/compare exposes the fully
// configurable API and pkg/accuracy the ground-truth CER/WER metrics.
package ocrcompare

import (
	"context"

	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/baditaflorin/go_ocr_compare/pkg/compare"
)

// Document is a candidate reference document.
type Document = domain.Document

// DocumentID is an opaque document identifier.
type DocumentID = domain.DocumentID

// SimilarityResult holds the scores and common spans for one candidate.
type SimilarityResult = domain.SimilarityResult

// ValidationError reports a recoverable request fault.
type ValidationError = domain.ValidationError

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	return domain.IsValidationError(err)
}

// CompareWithDefaults ranks documents against queryText using the default
// configuration: Jaccard scoring only, a five-word minimum for the query and
// candidates, and a three-word minimum for emitted spans.
func CompareWithDefaults(queryText string, documents []Document) ([]SimilarityResult, error) {
	c, err := compare.New()
	if err != nil {
		return nil, err
	}
	return c.Compare(context.Background(), queryText, documents)
}
