package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// PlainTextExtractor passes through .txt files unchanged.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a plain-text extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Supports reports whether ext is ".txt".
func (e *PlainTextExtractor) Supports(ext string) bool {
	return ext == ".txt"
}

// Extract reads the file contents.
func (e *PlainTextExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
