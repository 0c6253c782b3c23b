package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"ocr-notes-server/internal/domain"

	"github.com/google/uuid"
)

// DefaultPageTimeout bounds recognition of a single page.
const DefaultPageTimeout = 90 * time.Second

var errNoPages = errors.New("document has no pages")

// IngestionOptions tunes the pipeline.
type IngestionOptions struct {
	DPI         float64
	PageTimeout time.Duration
}

// IngestionService classifies uploads, rasterizes PDFs, runs OCR on every page
// and commits the resulting artifact.
type IngestionService struct {
	repo        domain.ArtifactRepository
	rasterizer  domain.Rasterizer
	recognizer  domain.Recognizer
	logger      domain.Logger
	dpi         float64
	pageTimeout time.Duration
	now         func() time.Time
}

// NewIngestionService creates the ingestion pipeline
func NewIngestionService(
	repo domain.ArtifactRepository,
	rasterizer domain.Rasterizer,
	recognizer domain.Recognizer,
	logger domain.Logger,
	opts IngestionOptions,
) *IngestionService {
	if opts.DPI <= 0 {
		opts.DPI = 300
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = DefaultPageTimeout
	}
	return &IngestionService{
		repo:        repo,
		rasterizer:  rasterizer,
		recognizer:  recognizer,
		logger:      logger,
		dpi:         opts.DPI,
		pageTimeout: opts.PageTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Ingest runs one upload through the pipeline. On success the returned artifact
// has already been appended to the repository; on any error nothing is stored.
// Ingestion is not cancelled when ctx is; ctx only carries request values.
func (s *IngestionService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.Artifact, error) {
	if len(req.Data) == 0 {
		return nil, domain.ErrEmptyInput
	}
	ctx = context.WithoutCancel(ctx)

	var (
		data        []byte
		contentType string
		outcomes    []domain.PageOutcome
		pageCount   int
		err         error
	)

	kind := Classify(req.ContentType)
	switch kind {
	case domain.ArtifactKindPDF:
		data, outcomes, pageCount, err = s.ingestPDF(ctx, req.Data)
		contentType = domain.PreviewContentType
	case domain.ArtifactKindImage:
		outcomes, err = s.ingestImage(ctx, req.Data)
		data = req.Data
		contentType = req.ContentType
		pageCount = 1
	default:
		return nil, &domain.UnsupportedTypeError{ContentType: req.ContentType}
	}
	if err != nil {
		s.logger.Error("Ingestion failed", err, "file_name", req.FileName, "content_type", req.ContentType)
		return nil, err
	}

	artifact := &domain.Artifact{
		ID:                uuid.New().String(),
		FileName:          req.FileName,
		ContentType:       contentType,
		SourceContentType: req.ContentType,
		RawBytes:          data,
		ExtractedText:     joinPageText(outcomes),
		PageCount:         pageCount,
		FailedPages:       failedPages(outcomes),
		CreatedAt:         s.now(),
	}

	if err := s.repo.Append(artifact); err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	s.logger.Info("Artifact ingested",
		"artifact_id", artifact.ID,
		"file_name", artifact.FileName,
		"kind", kind,
		"page_count", pageCount,
		"failed_pages", len(artifact.FailedPages),
		"text_length", len(artifact.ExtractedText),
	)
	return artifact, nil
}

// ingestPDF renders every page, keeps page one as the PNG preview and runs OCR
// on each page in order.
func (s *IngestionService) ingestPDF(ctx context.Context, pdf []byte) ([]byte, []domain.PageOutcome, int, error) {
	var preview []byte
	var outcomes []domain.PageOutcome

	pageCount, err := s.rasterizer.Rasterize(pdf, s.dpi, func(pageIndex int, page image.Image) error {
		if pageIndex == 0 {
			encoded, err := encodePNG(page)
			if err != nil {
				return &domain.DecodeError{Format: "pdf", Page: 0, Cause: err}
			}
			preview = encoded
		}
		outcomes = append(outcomes, s.recognizePage(ctx, pageIndex, page))
		return nil
	})
	if err != nil {
		var decodeErr *domain.DecodeError
		if !errors.As(err, &decodeErr) {
			err = domain.NewDecodeError("pdf", err)
		}
		return nil, nil, 0, err
	}
	if preview == nil {
		return nil, nil, 0, domain.NewDecodeError("pdf", errNoPages)
	}
	return preview, outcomes, pageCount, nil
}

func (s *IngestionService) ingestImage(ctx context.Context, data []byte) ([]domain.PageOutcome, error) {
	img, format, err := decodeImage(data)
	if err != nil {
		return nil, domain.NewDecodeError("image", err)
	}
	s.logger.Debug("Decoded image upload", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return []domain.PageOutcome{s.recognizePage(ctx, 0, img)}, nil
}

// recognizePage runs OCR on one page under the page timeout. Failures are
// recorded on the outcome, never returned. A timed-out call is still waited
// for, so the engine is free for the next page and no recognition outlives
// the ingestion.
func (s *IngestionService) recognizePage(ctx context.Context, pageIndex int, page image.Image) domain.PageOutcome {
	ctx, cancel := context.WithTimeout(ctx, s.pageTimeout)
	defer cancel()

	type pageResult struct {
		text string
		err  error
	}
	var res pageResult
	if err := ctx.Err(); err != nil {
		res.err = err
	} else {
		resultCh := make(chan pageResult, 1)
		go func() {
			t, e := s.recognizer.Recognize(ctx, page)
			resultCh <- pageResult{text: t, err: e}
		}()

		select {
		case res = <-resultCh:
		case <-ctx.Done():
			<-resultCh
			res.err = fmt.Errorf("timeout after %v", s.pageTimeout)
		}
	}

	if res.err != nil {
		s.logger.Warn("OCR failed; using empty text for page", "page", pageIndex+1, "error", res.err)
		return domain.PageOutcome{
			Index: pageIndex,
			Err:   &domain.RecognitionError{Page: pageIndex, Cause: res.err},
		}
	}
	return domain.PageOutcome{Index: pageIndex, Text: res.text}
}

// joinPageText concatenates page text in page order; failed pages add nothing.
func joinPageText(outcomes []domain.PageOutcome) string {
	var sb strings.Builder
	for _, o := range outcomes {
		if o.OK() {
			sb.WriteString(o.Text)
		}
	}
	return sb.String()
}

func failedPages(outcomes []domain.PageOutcome) []int {
	var failed []int
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o.Index)
		}
	}
	return failed
}
