// Package logging builds the loggers used by the two binaries. The client
// owns the terminal, so it logs to a file with charmbracelet/log. The server
// logs JSON to stderr with zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLogger writes leveled text logs to a file.
type FileLogger struct {
	*log.Logger
	Path string
	file *os.File
}

// NewFileLogger opens path for appending, creating its directory.
func NewFileLogger(path, level, prefix string) (*FileLogger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{
		Logger: New(file, lvl, prefix),
		Path:   path,
		file:   file,
	}, nil
}

func (f *FileLogger) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	return f.file.Close()
}

// New returns a text logger with timestamps.
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel accepts the usual names; empty means info.
func ParseLevel(level string) (log.Level, error) {
	raw := strings.ToLower(strings.TrimSpace(level))
	if raw == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// NewServerLogger returns a production zap logger at level.
func NewServerLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
		lvl = parsed
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("todoapi"), nil
}
