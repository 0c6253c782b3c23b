package domain

import (
	"context"
	"image"
	"time"
)

// Recognizer wraps a text-recognition engine.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Rasterizer renders PDF pages in document order. The document handle is
// released before Rasterize returns, whatever the outcome.
type Rasterizer interface {
	Rasterize(pdf []byte, dpi float64, visit PageVisitor) (int, error)
}

// ArtifactRepository holds committed artifacts in insertion order.
type ArtifactRepository interface {
	Append(artifact *Artifact) error
	FindByName(name string) (*Artifact, error)
	ListAll() []*Artifact
	Count() int
}

// IngestionService runs the upload pipeline.
type IngestionService interface {
	Ingest(ctx context.Context, req IngestRequest) (*Artifact, error)
}

// RetrievalService exposes read-only projections over the repository.
type RetrievalService interface {
	ListExtractedTexts() []string
	ListFileNames() []string
	ListSummaries() []ArtifactSummary
	GetRawArtifact(name string) (string, []byte, error)
	RenderGallery() (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetTessdataPrefix() string
	GetOCRLanguages() []string
	GetRasterDPI() float64
	GetOCRPageTimeout() time.Duration
	GetMaxArtifacts() int
	GetAllowedOrigins() []string
}
