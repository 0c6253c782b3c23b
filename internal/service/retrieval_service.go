package service

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"ocr-notes-server/internal/domain"
)

var galleryTemplate = template.Must(template.New("gallery").Parse(
	`<html><body style="background-color: #f0f0f0; padding: 20px;">` +
		`<h1 style="color: #333; text-align: center;">Image Gallery</h1>` +
		`<div style="display: flex; flex-wrap: wrap; gap: 20px; justify-content: center;">` +
		`{{range .}}` +
		`<div style="background: white; padding: 10px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">` +
		`<img src="/image/{{.Path}}" style="max-width: 300px; max-height: 300px; object-fit: contain;" />` +
		`<p style="text-align: center; margin-top: 10px;">{{.Caption}}</p>` +
		`</div>` +
		`{{end}}` +
		`</div></body></html>`))

type galleryItem struct {
	Path    string
	Caption string
}

// RetrievalService serves read-only views of the artifact repository
type RetrievalService struct {
	repo domain.ArtifactRepository
}

// NewRetrievalService creates a new retrieval service
func NewRetrievalService(repo domain.ArtifactRepository) *RetrievalService {
	return &RetrievalService{repo: repo}
}

// ListExtractedTexts returns each artifact's text in store order.
func (s *RetrievalService) ListExtractedTexts() []string {
	artifacts := s.repo.ListAll()
	texts := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		texts = append(texts, a.ExtractedText)
	}
	return texts
}

// ListFileNames returns each artifact's file name in store order, duplicates included.
func (s *RetrievalService) ListFileNames() []string {
	artifacts := s.repo.ListAll()
	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		names = append(names, a.FileName)
	}
	return names
}

// ListSummaries returns artifact metadata in store order.
func (s *RetrievalService) ListSummaries() []domain.ArtifactSummary {
	artifacts := s.repo.ListAll()
	out := make([]domain.ArtifactSummary, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.Summary())
	}
	return out
}

// GetRawArtifact returns the stored bytes and their media type for the first
// artifact named name.
func (s *RetrievalService) GetRawArtifact(name string) (string, []byte, error) {
	a, err := s.repo.FindByName(name)
	if err != nil {
		return "", nil, err
	}
	return a.ContentType, a.RawBytes, nil
}

// RenderGallery builds an HTML page with one card per artifact, in store order.
func (s *RetrievalService) RenderGallery() (string, error) {
	artifacts := s.repo.ListAll()
	items := make([]galleryItem, 0, len(artifacts))
	for _, a := range artifacts {
		items = append(items, galleryItem{
			Path:    url.PathEscape(a.FileName),
			Caption: a.FileName,
		})
	}

	var sb strings.Builder
	if err := galleryTemplate.Execute(&sb, items); err != nil {
		return "", fmt.Errorf("render gallery: %w", err)
	}
	return sb.String(), nil
}
