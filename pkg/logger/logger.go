// Package logger provides the application's structured logging setup.
package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog so every component shares one JSON logging
// configuration
type Logger struct {
	*slog.Logger
}

// New creates a logger writing JSON records to stdout
func New() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithField returns a logger carrying a pre-set attribute
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Logger: l.With(key, value)}
}

// WithStage returns a logger tagged with the pipeline stage it reports on
func (l *Logger) WithStage(stage string) *Logger {
	return l.WithField("stage", stage)
}
