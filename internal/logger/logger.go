package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp      time.Time           `json:"timestamp"`
	RequestID      string              `json:"request_id"`
	RemoteAddr     string              `json:"remote_addr"`
	Input          *int                `json:"input,omitempty"` // Set for single classifications
	From           *int                `json:"from,omitempty"`  // Set for range classifications
	To             *int                `json:"to,omitempty"`
	Kind           string              `json:"kind,omitempty"`
	Value          any                 `json:"value,omitempty"`
	Reason         string              `json:"reason,omitempty"`
	Summary        *classifier.Summary `json:"summary,omitempty"`
	ResponseTimeMs int64               `json:"response_time_ms"`
}

// Logger handles structured JSON logging
type Logger struct {
	mu      sync.Mutex
	file    *lumberjack.Logger
	path    string
	encoder *json.Encoder
}

// Config holds logger configuration
type Config struct {
	LogDir     string // Directory for log files
	FileName   string // Log file name (default: requests.jsonl)
	Stdout     bool   // Also write to stdout
	MaxSizeMB  int    // Rotate after this many megabytes (0 = lumberjack default)
	MaxBackups int    // Rotated files to keep (0 = keep all)
	MaxAgeDays int    // Days to keep rotated files (0 = forever)
	Compress   bool   // Gzip rotated files
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		LogDir:     "logs",
		FileName:   "requests.jsonl",
		Stdout:     false,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   false,
	}
}

// New creates a new logger instance
func New(cfg Config) (*Logger, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultConfig().FileName
	}

	// Ensure log directory exists
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(cfg.LogDir, cfg.FileName)
	file := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	// lumberjack opens lazily; touch the file so a bad path fails here
	if _, err := file.Write(nil); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var writer io.Writer = file
	if cfg.Stdout {
		writer = io.MultiWriter(file, os.Stdout)
	}

	return &Logger{
		file:    file,
		path:    logPath,
		encoder: json.NewEncoder(writer),
	}, nil
}

// Log writes an entry to the log
func (l *Logger) Log(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.encoder.Encode(entry)
}

// LogResult logs a single classification with request metadata
func (l *Logger) LogResult(result classifier.Classification, remoteAddr string, responseTimeMs int64) error {
	input := result.Input
	return l.Log(LogEntry{
		Timestamp:      result.Timestamp,
		RequestID:      result.RequestID,
		RemoteAddr:     remoteAddr,
		Input:          &input,
		Kind:           result.Kind.String(),
		Value:          result.Value.Value(),
		Reason:         result.Reason,
		ResponseTimeMs: responseTimeMs,
	})
}

// LogBatch logs a range classification. Only the summary is recorded,
// individual values can be recomputed from the range.
func (l *Logger) LogBatch(batch classifier.Batch, remoteAddr string, responseTimeMs int64) error {
	from, to := batch.From, batch.To
	summary := batch.Summary
	return l.Log(LogEntry{
		Timestamp:      batch.Timestamp,
		RequestID:      batch.RequestID,
		RemoteAddr:     remoteAddr,
		From:           &from,
		To:             &to,
		Summary:        &summary,
		ResponseTimeMs: responseTimeMs,
	})
}

// Rotate closes the current log file and starts a new one
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Rotate()
}

// Close closes the logger
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	return l.path
}
