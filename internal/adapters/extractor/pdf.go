package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// PDFExtractor converts each page of a PDF into a PNG image with pdftoppm
// (poppler) and runs the image extractor over every page. Page images are
// written under tempDir and removed before returning.
type PDFExtractor struct {
	images  *ImageExtractor
	tempDir string
	dpi     int
}

// NewPDFExtractor creates a PDF extractor that rasterizes pages into tempDir
// at the given DPI before OCR. A DPI of 0 uses 150.
func NewPDFExtractor(images *ImageExtractor, tempDir string, dpi int) *PDFExtractor {
	if dpi <= 0 {
		dpi = 150
	}
	return &PDFExtractor{
		images:  images,
		tempDir: tempDir,
		dpi:     dpi,
	}
}

// Supports reports whether ext is ".pdf".
func (e *PDFExtractor) Supports(ext string) bool {
	return ext == ".pdf"
}

// Extract rasterizes the PDF and returns the concatenated OCR text of all
// pages, in page order.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	prefix := filepath.Join(e.tempDir, "page_"+uuid.NewString())
	cmd := exec.CommandContext(ctx, "pdftoppm", "-png", "-r", fmt.Sprint(e.dpi), path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", fmt.Errorf("glob page images: %w", err)
	}
	sort.Strings(pages)
	defer func() {
		for _, p := range pages {
			os.Remove(p)
		}
	}()

	if len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm produced no pages for %s", filepath.Base(path))
	}

	var sb strings.Builder
	for i, page := range pages {
		text, err := e.images.Extract(ctx, page)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
