// Package tesseract adapts a process-wide Tesseract client (via gosseract) to
// domain.Recognizer.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"ocr-notes-server/internal/domain"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/sync/semaphore"
)

// Engine implements domain.Recognizer with a single gosseract client that is
// configured once and reused. Calls are serialized; waiting for the client
// honours the caller's context.
type Engine struct {
	sem       *semaphore.Weighted
	client    *gosseract.Client
	languages []string
	logger    domain.Logger
}

// NewEngine creates the recognition engine. tessdataPrefix may be empty to
// use the system default data directory.
func NewEngine(tessdataPrefix string, languages []string, logger domain.Logger) (*Engine, error) {
	client := gosseract.NewClient()

	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	logger.Info("OCR engine initialized",
		"engine", "tesseract",
		"version", gosseract.Version(),
		"tessdata", tessdataPrefix,
		"languages", strings.Join(languages, "+"),
	)

	return &Engine{
		sem:       semaphore.NewWeighted(1),
		client:    client,
		languages: append([]string(nil), languages...),
		logger:    logger,
	}, nil
}

// Recognize returns the text tesseract finds in img.
func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer e.sem.Release(1)

	// The deadline may have passed while another page held the client.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// Close releases the underlying tesseract client.
func (e *Engine) Close() error {
	if err := e.sem.Acquire(context.Background(), 1); err != nil {
		return err
	}
	defer e.sem.Release(1)
	return e.client.Close()
}
