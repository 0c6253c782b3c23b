package domain

import (
	"image"
	"time"
)

// ArtifactKind is the ingestion path chosen for an upload from its declared content type.
type ArtifactKind string

const (
	ArtifactKindPDF         ArtifactKind = "pdf"
	ArtifactKindImage       ArtifactKind = "image"
	ArtifactKindUnsupported ArtifactKind = "unsupported"
)

// PreviewContentType is the media type stored for PDF uploads, whose first page
// is kept as a PNG render.
const PreviewContentType = "image/png"

// Artifact is the stored result of ingesting one upload.
// FileName is the lookup key and is not unique across the store.
type Artifact struct {
	ID                string    `json:"id"`
	FileName          string    `json:"file_name"`
	ContentType       string    `json:"content_type"`
	SourceContentType string    `json:"source_content_type"`
	RawBytes          []byte    `json:"-"`
	ExtractedText     string    `json:"extracted_text"`
	PageCount         int       `json:"page_count"`
	FailedPages       []int     `json:"failed_pages,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Summary projects the artifact without its bytes.
func (a *Artifact) Summary() ArtifactSummary {
	return ArtifactSummary{
		ID:                a.ID,
		FileName:          a.FileName,
		ContentType:       a.ContentType,
		SourceContentType: a.SourceContentType,
		Size:              int64(len(a.RawBytes)),
		PageCount:         a.PageCount,
		FailedPages:       append([]int(nil), a.FailedPages...),
		TextLength:        len(a.ExtractedText),
		CreatedAt:         a.CreatedAt,
	}
}

// ArtifactSummary is the metadata view served by the artifact listing.
type ArtifactSummary struct {
	ID                string    `json:"id"`
	FileName          string    `json:"file_name"`
	ContentType       string    `json:"content_type"`
	SourceContentType string    `json:"source_content_type"`
	Size              int64     `json:"size"`
	PageCount         int       `json:"page_count"`
	FailedPages       []int     `json:"failed_pages,omitempty"`
	TextLength        int       `json:"text_length"`
	CreatedAt         time.Time `json:"created_at"`
}

// IngestRequest carries one upload into the ingestion pipeline.
type IngestRequest struct {
	Data        []byte
	FileName    string
	ContentType string
}

// PageOutcome is the OCR result for a single page (or the single image of an
// image upload). Err is set when recognition failed; Text is then empty.
type PageOutcome struct {
	Index int
	Text  string
	Err   error
}

// OK reports whether recognition succeeded for the page.
func (p PageOutcome) OK() bool {
	return p.Err == nil
}

// PageVisitor receives rendered pages in document order. Returning an error
// stops rasterization.
type PageVisitor func(pageIndex int, page image.Image) error
