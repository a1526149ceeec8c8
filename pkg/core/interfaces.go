package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger implements Logger on top of a structured slog.Logger.
// Messages are emitted at info level with the formatted text as the message.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps l; a nil logger falls back to slog.Default()
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Printf implements Logger
func (s *SlogLogger) Printf(format string, args ...interface{}) {
	if !s.logger.Enabled(context.Background(), slog.LevelInfo) {
		return
	}
	s.logger.Info(trimNewline(fmt.Sprintf(format, args...)))
}

// Slog returns the underlying structured logger
func (s *SlogLogger) Slog() *slog.Logger {
	return s.logger
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
