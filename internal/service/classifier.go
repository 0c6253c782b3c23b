package service

import (
	"strings"

	"ocr-notes-server/internal/domain"
)

// Classify picks the ingestion path from the declared content type alone.
// The bytes are never sniffed, so a mislabeled upload takes the wrong path.
func Classify(contentType string) domain.ArtifactKind {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return domain.ArtifactKindPDF
	case strings.HasPrefix(contentType, "image/"):
		return domain.ArtifactKindImage
	default:
		return domain.ArtifactKindUnsupported
	}
}
