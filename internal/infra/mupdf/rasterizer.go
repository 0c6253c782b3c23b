// Package mupdf renders PDF pages to raster images with MuPDF (via go-fitz).
package mupdf

import (
	"errors"
	"fmt"

	"ocr-notes-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the resolution pages are rendered at when none is configured.
const DefaultDPI = 300

var errNoPages = errors.New("document has no pages")

// Rasterizer implements domain.Rasterizer
type Rasterizer struct {
	logger domain.Logger
}

// NewRasterizer creates a new PDF rasterizer
func NewRasterizer(logger domain.Logger) *Rasterizer {
	return &Rasterizer{logger: logger}
}

// Rasterize opens pdf, renders each page at dpi and hands it to visit, one page
// at a time and in document order. The document is closed before returning on
// every path. Open and render failures are returned as *domain.DecodeError;
// an error from visit stops rendering and is returned unchanged.
func (r *Rasterizer) Rasterize(pdf []byte, dpi float64, visit domain.PageVisitor) (int, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, domain.NewDecodeError("pdf", fmt.Errorf("failed to open PDF: %w", err))
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			r.logger.Warn("Failed to close PDF document", "error", cerr)
		}
	}()

	numPages := doc.NumPage()
	if numPages <= 0 {
		return 0, domain.NewDecodeError("pdf", errNoPages)
	}

	for pageNum := 0; pageNum < numPages; pageNum++ {
		r.logger.Debug("Rendering PDF page", "page", pageNum+1, "total", numPages, "dpi", dpi)
		img, err := doc.ImageDPI(pageNum, dpi)
		if err != nil {
			return numPages, &domain.DecodeError{Format: "pdf", Page: pageNum, Cause: err}
		}
		if err := visit(pageNum, img); err != nil {
			return numPages, err
		}
	}

	return numPages, nil
}
