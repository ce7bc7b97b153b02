package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLoggerImpl appends one JSON object per upstream event to a log file
// held open for the process lifetime
type FileLoggerImpl struct {
	file    *os.File
	encoder *json.Encoder
	mutex   sync.Mutex
}

func NewFileLogger(logPath string) (*FileLoggerImpl, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileLoggerImpl{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (l *FileLoggerImpl) LogRequest(providerName, target string) {
	l.write(map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"provider":  providerName,
		"event":     "request",
		"target":    target,
	})
}

// LogResponse logs a successful upstream response
func (l *FileLoggerImpl) LogResponse(providerName, target string, summary map[string]interface{}, duration time.Duration) {
	l.write(map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"event":       "response",
		"target":      target,
		"duration_ms": duration.Milliseconds(),
		"response":    summary,
	})
}

// LogError logs a failed upstream request
func (l *FileLoggerImpl) LogError(providerName, target string, err error, duration time.Duration) {
	l.write(map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"event":       "error",
		"target":      target,
		"duration_ms": duration.Milliseconds(),
		"error":       err.Error(),
	})
}

// Close releases the underlying log file
func (l *FileLoggerImpl) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.file.Close()
}

func (l *FileLoggerImpl) write(entry map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := l.encoder.Encode(entry); err != nil {
		slog.Error("write upstream log entry", "error", err)
	}
}
