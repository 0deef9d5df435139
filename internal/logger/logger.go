package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a config level name to a log level, defaulting to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TopicParsed logs a parsed topic body
func (l *Logger) TopicParsed(guideID, topicID string, blocks int) {
	l.Debug("topic parsed",
		"guide", guideID,
		"topic", topicID,
		"blocks", blocks)
}

// TopicSaved logs a persisted topic
func (l *Logger) TopicSaved(guideID, topicID string) {
	l.Info("topic saved",
		"guide", guideID,
		"topic", topicID)
}

// GuideCreated logs a newly created guide
func (l *Logger) GuideCreated(guideID, title string) {
	l.Info("guide created",
		"guide", guideID,
		"title", title)
}

// GuideImported logs a guide replaced by an import
func (l *Logger) GuideImported(guideID string, topics int) {
	l.Info("guide imported",
		"guide", guideID,
		"topics", topics)
}

// ImportRejected logs an import that left the stored guide untouched
func (l *Logger) ImportRejected(guideID string, err error) {
	l.Warn("import rejected",
		"guide", guideID,
		"error", err)
}

// GuideExported logs an export
func (l *Logger) GuideExported(guideID string, bytes int) {
	l.Info("guide exported",
		"guide", guideID,
		"bytes", bytes)
}

// StoreError logs a failed store operation
func (l *Logger) StoreError(operation, key string, err error) {
	l.Error("store error",
		"operation", operation,
		"key", key,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(backend, location string) {
	l.Debug("config loaded",
		"store", backend,
		"location", location)
}
