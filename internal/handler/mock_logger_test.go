package handler

import (
	"sync"

	"ocr-notes-server/internal/domain"
)

// MockHandlerLogger records messages for handler package tests.
type MockHandlerLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

var _ domain.Logger = (*MockHandlerLogger)(nil)

func (l *MockHandlerLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+": "+msg)
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) { l.add("INFO", msg) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.add("ERROR", msg)
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) { l.add("DEBUG", msg) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  { l.add("WARN", msg) }

func (l *MockHandlerLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}
