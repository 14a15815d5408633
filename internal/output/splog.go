// Package output provides the console logger and terminal styling used by
// git-tfs commands.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without
// timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// createLumberjackLogger creates a rotating log file writer with
// configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,  // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if maxSizeStr := os.Getenv("GIT_TFS_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}
	if maxBackupsStr := os.Getenv("GIT_TFS_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}
	if maxAgeStr := os.Getenv("GIT_TFS_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// Splog is the console logger for git-tfs. Messages go to stdout in plain
// form; when a log file path is configured everything is additionally
// written there with timestamps, rotated by lumberjack.
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
}

// NewSplog creates a console-only logger. Debug messages are enabled when
// the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithFile("")
	return splog
}

// NewSplogWriter creates a console-only logger writing to w. Used by tests.
func NewSplogWriter(w io.Writer) *Splog {
	handler := &simpleHandler{writer: w, debugMode: os.Getenv("DEBUG") != ""}
	return &Splog{
		logger: slog.New(handler),
		writer: w,
	}
}

// NewSplogWithFile creates a logger with an optional rotated debug log file.
func NewSplogWithFile(logFilePath string) (*Splog, error) {
	writer := os.Stdout
	splog := &Splog{writer: writer}

	consoleHandler := &simpleHandler{
		writer:    writer,
		debugMode: os.Getenv("DEBUG") != "",
	}
	handlers := []slog.Handler{consoleHandler}

	if logFilePath != "" {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, args...))
}

// Warn writes a warning message. Warnings go to stdout so that scripted
// callers see them interleaved with normal output.
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logger.Warn(fmt.Sprintf("warning: "+format, args...))
}

// Debug writes a debug message, shown on the console only when DEBUG is set
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logger.Debug(fmt.Sprintf(format, args...))
}

// Newline writes a blank line to the console
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}

// Close releases the log file writer, if any
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
