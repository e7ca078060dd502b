package ports

import "context"

// Extractor produces a UTF-8 text string from a file on disk.
// Supports reports whether the extractor handles the given lower-case file
// extension (including the leading dot).
type Extractor interface {
	Supports(ext string) bool
	Extract(ctx context.Context, path string) (string, error)
}
