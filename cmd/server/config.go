package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the server settings that go beyond simple flags: OCR
// language hints and the optional embedding backend. Loaded from a TOML file
// passed with -config; all fields have working defaults.
type Config struct {
	OCR       OCRConfig       `toml:"ocr"`
	Embedding EmbeddingConfig `toml:"embedding"`
}

// OCRConfig configures the text extraction pipeline.
type OCRConfig struct {
	// Languages are Tesseract trained-data names, e.g. ["vie", "eng"].
	Languages []string `toml:"languages"`
	// TempDir is where uploads and page rasters are written. Empty uses the
	// system temp directory.
	TempDir string `toml:"temp_dir"`
	// RenderDPI is the rasterization resolution for PDF pages.
	RenderDPI int `toml:"render_dpi"`
}

// EmbeddingConfig configures the optional cosine-similarity backend.
// An empty provider disables the cosine path; comparison then runs
// Jaccard-only.
type EmbeddingConfig struct {
	// Provider is "ollama", "openai" or empty.
	Provider string `toml:"provider"`
	// Model is the embedding model name, e.g. "nomic-embed-text".
	Model string `toml:"model"`
	// ServerURL overrides the Ollama server address.
	ServerURL string `toml:"server_url"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		OCR: OCRConfig{
			Languages: []string{"eng"},
			TempDir:   os.TempDir(),
			RenderDPI: 150,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.OCR.TempDir == "" {
		cfg.OCR.TempDir = os.TempDir()
	}
	if cfg.OCR.RenderDPI <= 0 {
		cfg.OCR.RenderDPI = 150
	}

	switch cfg.Embedding.Provider {
	case "", "ollama", "openai":
	default:
		return cfg, fmt.Errorf("unknown embedding provider: %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Provider != "" && cfg.Embedding.Model == "" {
		return cfg, fmt.Errorf("embedding.model is required when embedding.provider is set")
	}

	return cfg, nil
}
