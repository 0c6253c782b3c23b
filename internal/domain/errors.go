package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrArtifactNotFound = errors.New("artifact not found")
)

// UnsupportedTypeError is returned when the declared content type is neither a
// PDF nor an image.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported content type: " + e.ContentType
}

// DecodeError means the bytes could not be parsed as the declared type.
// It is fatal to the ingestion that produced it.
type DecodeError struct {
	Format string
	Page   int // -1 when the failure is not tied to a page
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Page >= 0 {
		return fmt.Sprintf("decode %s page %d: %v", e.Format, e.Page+1, e.Cause)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError wraps cause as a document-level decode failure.
func NewDecodeError(format string, cause error) *DecodeError {
	return &DecodeError{Format: format, Page: -1, Cause: cause}
}

// RecognitionError reports an OCR failure on one page. The pipeline absorbs it.
type RecognitionError struct {
	Page  int
	Cause error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognize page %d: %v", e.Page+1, e.Cause)
}

func (e *RecognitionError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether err aborts an ingestion.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var unsupported *UnsupportedTypeError
	var decode *DecodeError
	return errors.Is(err, ErrEmptyInput) || errors.As(err, &unsupported) || errors.As(err, &decode)
}
