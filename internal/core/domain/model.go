package domain

import (
	"encoding/json"
	"fmt"
)

// DocumentID is an opaque document identifier. Callers may supply either a
// JSON string or a JSON number; both decode to their string form.
type DocumentID string

// UnmarshalJSON accepts string and numeric identifiers.
func (id *DocumentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = DocumentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = DocumentID(n.String())
		return nil
	}
	return fmt.Errorf("document id must be a string or a number, got %s", data)
}

// Document is a reference document supplied inline with a comparison request.
// Immutable once received; it has no lifecycle beyond the request.
type Document struct {
	ID       DocumentID `json:"id"`
	FileName string     `json:"fileName"`
	Text     string     `json:"text"`
}

// SimilarityResult holds the scores and overlapping spans for a single
// candidate document. Cosine is nil when the embedding backend is not
// configured or was unavailable for the request.
type SimilarityResult struct {
	DocumentID  DocumentID `json:"document_id"`
	FileName    string     `json:"fileName"`
	Jaccard     float64    `json:"jaccard_similarity"`
	Cosine      *float64   `json:"cosine_similarity,omitempty"`
	CommonTexts []string   `json:"common_texts"`
}

// PrimaryScore is the score results are ordered by: cosine when present,
// Jaccard otherwise.
func (r SimilarityResult) PrimaryScore() float64 {
	if r.Cosine != nil {
		return *r.Cosine
	}
	return r.Jaccard
}

// ComparisonRequest is the wire shape of a comparison call: one query text
// against a set of candidate documents.
type ComparisonRequest struct {
	Text      string     `json:"text"`
	Documents []Document `json:"documents"`
}
