// Package extractor provides the thin I/O wrappers that turn uploaded files
// into UTF-8 text: Tesseract OCR for images, poppler rasterization plus OCR
// for PDFs, and word/document.xml extraction for Word documents. The only
// contract with the comparison core is "produce a text string given a path".
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/go_ocr_compare/internal/ports"
)

// Manager dispatches a file to the first registered extractor that supports
// its extension.
type Manager struct {
	logger     ports.Logger
	extractors []ports.Extractor
}

// NewManager creates an extraction manager over the given extractors.
func NewManager(logger ports.Logger, extractors ...ports.Extractor) *Manager {
	return &Manager{
		logger:     logger,
		extractors: extractors,
	}
}

// Supports reports whether any registered extractor handles the extension.
func (m *Manager) Supports(ext string) bool {
	for _, e := range m.extractors {
		if e.Supports(ext) {
			return true
		}
	}
	return false
}

// Extract produces the text content of the file at path.
func (m *Manager) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range m.extractors {
		if !e.Supports(ext) {
			continue
		}
		text, err := e.Extract(ctx, path)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		m.logger.Debug("Extracted text",
			"path", path,
			"ext", ext,
			"chars", len(text),
		)
		return text, nil
	}
	return "", fmt.Errorf("unsupported file type: %s", ext)
}
