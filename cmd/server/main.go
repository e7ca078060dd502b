package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/go_ocr_compare/internal/adapters/embedder"
	"github.com/baditaflorin/go_ocr_compare/internal/adapters/extractor"
	loggeradapter "github.com/baditaflorin/go_ocr_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_ocr_compare/internal/core/domain"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
	"github.com/baditaflorin/go_ocr_compare/pkg/accuracy"
	"github.com/baditaflorin/go_ocr_compare/pkg/compare"
	"github.com/baditaflorin/l"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 50 * 1024 * 1024 // 50MB, uploads carry scanned documents
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
	CompareTimeout        = 60 * time.Second
	ExtractTimeout        = 120 * time.Second
)

var (
	// Comparison engine, shared across requests
	comparer *compare.Comparer

	// Ground-truth accuracy metrics
	metrics *accuracy.Metrics

	// Text extraction pipeline for uploads
	extractors *extractor.Manager

	// Temp directory for uploaded files
	tempDir string

	// Logger instance
	logger l.Logger

	// Adapted logger for internal components
	portsLogger ports.Logger
)

// AccuracyRequest scores an OCR hypothesis against a ground-truth transcript.
type AccuracyRequest struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
}

// AccuracyResponse carries both error rates.
type AccuracyResponse struct {
	CharacterErrorRate float64 `json:"character_error_rate"`
	WordErrorRate      float64 `json:"word_error_rate"`
}

// CompareResponse wraps the ranked similarity results.
type CompareResponse struct {
	Results []domain.SimilarityResult `json:"results"`
}

// UploadResult reports per-file extraction output; exactly one of Text and
// Error is meaningful.
type UploadResult struct {
	File  string `json:"file"`
	Text  string `json:"text,omitempty"`
	Time  string `json:"time,omitempty"`
	Error string `json:"error,omitempty"`
}

// UploadResponse wraps per-file extraction results.
type UploadResponse struct {
	Results []UploadResult `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	configPath := flag.String("config", "", "TOML config file for OCR and embedding settings")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting OCR comparison server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"embedding_provider", cfg.Embedding.Provider,
		"ocr_languages", cfg.OCR.Languages,
	)

	if err := initComponents(cfg, *warmUp); err != nil {
		logger.Error("Failed to initialize components", "error", err)
		os.Exit(1)
	}

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initComponents builds the comparison engine, accuracy metrics and the
// extraction pipeline from the loaded configuration.
func initComponents(cfg Config, warmUp bool) error {
	portsLogger = loggeradapter.FromExisting(logger)

	compareOpts := []compare.Option{
		compare.WithLogger(logger),
		compare.WithOptimizedNormalizer(),
	}
	if warmUp {
		compareOpts = append(compareOpts, compare.WithWarmUp(true))
	}

	// The embedding model is loaded once here and shared, read-only, across
	// all in-flight requests. A failure to construct it is fatal at startup;
	// a failure at request time only degrades that request to Jaccard.
	switch cfg.Embedding.Provider {
	case "ollama":
		emb, err := embedder.NewOllama(cfg.Embedding.Model, cfg.Embedding.ServerURL)
		if err != nil {
			return fmt.Errorf("initialize ollama embedder: %w", err)
		}
		compareOpts = append(compareOpts, compare.WithEmbedder(emb))
	case "openai":
		emb, err := embedder.NewOpenAI(cfg.Embedding.Model)
		if err != nil {
			return fmt.Errorf("initialize openai embedder: %w", err)
		}
		compareOpts = append(compareOpts, compare.WithEmbedder(emb))
	}

	var err error
	comparer, err = compare.New(compareOpts...)
	if err != nil {
		return fmt.Errorf("initialize comparer: %w", err)
	}

	metrics, err = accuracy.New(accuracy.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initialize accuracy metrics: %w", err)
	}

	tempDir = cfg.OCR.TempDir
	images := extractor.NewImageExtractor(cfg.OCR.Languages...)
	extractors = extractor.NewManager(portsLogger,
		images,
		extractor.NewPDFExtractor(images, tempDir, cfg.OCR.RenderDPI),
		extractor.NewWordExtractor(),
		extractor.NewPlainTextExtractor(),
	)

	logger.Info("Components initialized successfully",
		"warm_up", warmUp,
		"cosine_enabled", cfg.Embedding.Provider != "",
	)
	return nil
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "OCRCompareServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/ocr/compare":
		handleCompare(ctx)
	case "/ocr/accuracy":
		handleAccuracy(ctx)
	case "/ocr/upload":
		handleUpload(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleCompare ranks the supplied documents against the query text.
// Validation failures are client errors (422); anything unexpected is an
// opaque server error.
func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req domain.ComparisonRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		writeJSONError(ctx, "Text for comparison is missing")
		return
	}
	if len(req.Documents) == 0 {
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		writeJSONError(ctx, "Documents for comparison are missing")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), CompareTimeout)
	defer cancel()

	results, err := comparer.Compare(c, req.Text, req.Documents)
	if err != nil {
		if domain.IsValidationError(err) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			writeJSONError(ctx, err.Error())
			return
		}
		logger.Error("Comparison failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, CompareResponse{Results: results})
}

// handleAccuracy scores an OCR hypothesis against a ground-truth transcript.
func handleAccuracy(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req AccuracyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, AccuracyResponse{
		CharacterErrorRate: metrics.CharacterErrorRate(req.Reference, req.Hypothesis),
		WordErrorRate:      metrics.WordErrorRate(req.Reference, req.Hypothesis),
	})
}

// handleUpload accepts a multipart batch of scanned documents and extracts
// text from each. A failing file yields an error entry in the results list
// and never aborts the batch.
func handleUpload(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid multipart request: "+err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "No files uploaded")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), ExtractTimeout)
	defer cancel()

	results := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		start := time.Now()
		name := filepath.Base(fh.Filename)
		ext := strings.ToLower(filepath.Ext(fh.Filename))

		if !extractors.Supports(ext) {
			results = append(results, UploadResult{
				File:  name,
				Error: "Unsupported file type: " + ext,
			})
			continue
		}

		tempPath := filepath.Join(tempDir, "upload_"+uuid.NewString()+ext)
		if err := fasthttp.SaveMultipartFile(fh, tempPath); err != nil {
			logger.Error("Failed to persist upload", "file", name, "error", err)
			results = append(results, UploadResult{File: name, Error: "Failed to save uploaded file"})
			continue
		}

		text, err := extractors.Extract(c, tempPath)
		os.Remove(tempPath)
		if err != nil {
			logger.Error("Extraction failed", "file", name, "error", err)
			results = append(results, UploadResult{File: name, Error: err.Error()})
			continue
		}

		results = append(results, UploadResult{
			File: name,
			Text: text,
			Time: fmt.Sprintf("%.2f seconds", time.Since(start).Seconds()),
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, UploadResponse{Results: results})
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
