package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tiff": {},
	".tif":  {},
	".webp": {},
}

// ImageExtractor recognizes text in image files with Tesseract. A fresh
// gosseract client is created per call; the client is not safe for concurrent
// reuse and setup cost is negligible next to recognition itself.
type ImageExtractor struct {
	languages []string
}

// NewImageExtractor creates a Tesseract-backed image extractor. languages are
// Tesseract trained-data names (e.g. "eng", "vie"); empty means the Tesseract
// default.
func NewImageExtractor(languages ...string) *ImageExtractor {
	return &ImageExtractor{languages: languages}
}

// Supports reports whether ext is a recognized image extension.
func (e *ImageExtractor) Supports(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

// Extract runs OCR on the image at path and returns the recognized text.
func (e *ImageExtractor) Extract(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages %v: %w", e.languages, err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}
