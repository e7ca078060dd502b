package extractor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordExtractor reads the text content of .docx files: the document archive
// is a zip whose word/document.xml carries the paragraphs. Legacy binary .doc
// files are not supported.
type WordExtractor struct{}

// NewWordExtractor creates a Word document extractor.
func NewWordExtractor() *WordExtractor {
	return &WordExtractor{}
}

// Supports reports whether ext is ".docx".
func (e *WordExtractor) Supports(ext string) bool {
	return ext == ".docx"
}

// Extract returns the concatenated paragraph text of the document, one
// paragraph per line.
func (e *WordExtractor) Extract(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", fmt.Errorf("word/document.xml not found in archive")
}

// documentText walks the WordprocessingML stream collecting text runs.
// Paragraph ends become newlines, explicit tabs and breaks become spaces.
func documentText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br":
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
