// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"ocr-notes-server/internal/domain"
	apperrors "ocr-notes-server/pkg/errors"

	"github.com/gorilla/mux"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// multipart boundaries and part headers.
const multipartOverhead = 1 << 20

// ArtifactHandler handles upload and retrieval requests
type ArtifactHandler struct {
	ingestion   domain.IngestionService
	retrieval   domain.RetrievalService
	maxFileSize int64
	logger      domain.Logger
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(
	ingestion domain.IngestionService,
	retrieval domain.RetrievalService,
	maxFileSize int64,
	logger domain.Logger,
) *ArtifactHandler {
	return &ArtifactHandler{
		ingestion:   ingestion,
		retrieval:   retrieval,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type uploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"file_name"`
	ID       string `json:"id"`
}

// Upload handles multipart uploads in the "file" field
func (h *ArtifactHandler) Upload(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAppError(w, apperrors.NewTooLargeError(h.maxFileSize))
			return
		}
		writeAppError(w, apperrors.FromDomain(domain.ErrEmptyInput))
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		writeAppError(w, apperrors.NewTooLargeError(h.maxFileSize))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", err, "request_id", requestID)
		writeAppError(w, apperrors.NewInternalError("Failed to read upload", err))
		return
	}

	artifact, err := h.ingestion.Ingest(r.Context(), domain.IngestRequest{
		Data:        data,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		appErr := apperrors.FromDomain(err)
		if apperrors.GetStatusCode(appErr) >= http.StatusInternalServerError {
			h.logger.Error("Upload failed", err, "request_id", requestID, "file_name", header.Filename)
		} else {
			h.logger.Warn("Upload rejected", "request_id", requestID, "file_name", header.Filename, "reason", err.Error())
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:  "Image uploaded successfully: " + artifact.FileName,
		FileName: artifact.FileName,
		ID:       artifact.ID,
	})
}

// ListTexts returns the extracted text of every artifact
func (h *ArtifactHandler) ListTexts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.retrieval.ListExtractedTexts())
}

// ListNames returns the file name of every artifact
func (h *ArtifactHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.retrieval.ListFileNames())
}

// ListArtifacts returns artifact metadata without bytes
func (h *ArtifactHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.retrieval.ListSummaries())
}

// GetImage serves the stored bytes of the first artifact with the given name
func (h *ArtifactHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	fileName := mux.Vars(r)["fileName"]
	if fileName == "" {
		writeError(w, http.StatusBadRequest, "File name is required")
		return
	}

	contentType, data, err := h.retrieval.GetRawArtifact(fileName)
	if err != nil {
		appErr := apperrors.FromDomain(err)
		if apperrors.IsType(appErr, apperrors.ErrorTypeNotFound) {
			h.logger.Debug("Artifact not found", "file_name", fileName)
		} else {
			h.logger.Error("Failed to fetch artifact", err, "file_name", fileName)
		}
		writeAppError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Gallery renders the HTML gallery
func (h *ArtifactHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	page, err := h.retrieval.RenderGallery()
	if err != nil {
		h.logger.Error("Failed to render gallery", err, "request_id", RequestIDFromContext(r.Context()))
		writeAppError(w, apperrors.NewInternalError("Failed to render gallery", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)
}
