package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"ocr-notes-server/internal/domain"
	"ocr-notes-server/internal/repository"
)

// pageImage builds a page whose width encodes its index, so recognizers can
// tell pages apart.
func pageImage(index int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10+index, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.Black)
	return img
}

func pageIndexOf(img image.Image) int {
	return img.Bounds().Dx() - 10
}

// MockRasterizer yields fixed pages and tracks document lifetime.
type MockRasterizer struct {
	pages   int
	openErr error
	mu      sync.Mutex
	opened  int
	closed  int
}

func (m *MockRasterizer) Rasterize(pdf []byte, dpi float64, visit domain.PageVisitor) (int, error) {
	if m.openErr != nil {
		return 0, m.openErr
	}
	m.mu.Lock()
	m.opened++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.closed++
		m.mu.Unlock()
	}()

	for i := 0; i < m.pages; i++ {
		if err := visit(i, pageImage(i)); err != nil {
			return m.pages, err
		}
	}
	return m.pages, nil
}

// MockRecognizer returns texts[pageIndex] and fails on selected pages.
type MockRecognizer struct {
	texts  map[int]string
	failOn map[int]bool
	block  map[int]bool
	mu     sync.Mutex
	calls  []int
}

func (m *MockRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	idx := pageIndexOf(img)
	m.mu.Lock()
	m.calls = append(m.calls, idx)
	m.mu.Unlock()

	if m.block[idx] {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.failOn[idx] {
		return "", errors.New("engine failure")
	}
	return m.texts[idx], nil
}

func (m *MockRecognizer) Calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.calls...)
}

// SerialRecognizer owns a single client like the tesseract engine: calls are
// serialized and, once running, ignore their context.
type SerialRecognizer struct {
	texts    map[int]string
	delays   map[int]time.Duration
	mu       sync.Mutex
	inFlight atomic.Int32
}

func (r *SerialRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight.Add(1)
	defer r.inFlight.Add(-1)

	idx := pageIndexOf(img)
	time.Sleep(r.delays[idx])
	return r.texts[idx], nil
}

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{messages: []string{}}
}

func (m *MockLogger) record(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, s)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func newTestRepository() *repository.MemoryArtifactRepository {
	return repository.NewMemoryArtifactRepository(0, NewMockLogger())
}
