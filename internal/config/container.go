package config

import (
	"fmt"

	"ocr-notes-server/internal/domain"
	"ocr-notes-server/internal/infra/mupdf"
	"ocr-notes-server/internal/infra/tesseract"
	"ocr-notes-server/internal/repository"
	"ocr-notes-server/internal/service"
	"ocr-notes-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config           domain.Config
	Logger           domain.Logger
	Repository       domain.ArtifactRepository
	Rasterizer       domain.Rasterizer
	Recognizer       *tesseract.Engine
	IngestionService domain.IngestionService
	RetrievalService domain.RetrievalService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	// The OCR engine is created once and shared by every ingestion.
	engine, err := tesseract.NewEngine(config.GetTessdataPrefix(), config.GetOCRLanguages(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("init ocr engine: %w", err)
	}

	repo := repository.NewMemoryArtifactRepository(config.GetMaxArtifacts(), appLogger)
	rasterizer := mupdf.NewRasterizer(appLogger)

	ingestion := service.NewIngestionService(repo, rasterizer, engine, appLogger, service.IngestionOptions{
		DPI:         config.GetRasterDPI(),
		PageTimeout: config.GetOCRPageTimeout(),
	})
	retrieval := service.NewRetrievalService(repo)

	return &Container{
		Config:           config,
		Logger:           appLogger,
		Repository:       repo,
		Rasterizer:       rasterizer,
		Recognizer:       engine,
		IngestionService: ingestion,
		RetrievalService: retrieval,
	}, nil
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.Recognizer == nil {
		return nil
	}
	return c.Recognizer.Close()
}
