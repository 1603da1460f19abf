// Package logging builds droplet's zap loggers from config. Each subsystem
// logs under its own category name, and categories can be switched off
// individually. When debug_mode is false nothing is written.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"droplet/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup and shutdown
	CategoryConfig     Category = "config"     // Config loading and hot reload
	CategoryAPI        Category = "api"        // Reflection generation calls
	CategoryController Category = "controller" // State transitions and fetch sequencing
	CategoryUI         Category = "ui"         // Terminal UI events
)

// Stderr as the file name sends output to standard error.
const Stderr = "stderr"

// Logger hands out per-category zap loggers sharing one core.
type Logger struct {
	base   *zap.Logger
	cfg    config.LoggingConfig
	closer io.Closer
}

// New builds a Logger. An empty cfg.File means standard error. With
// DebugMode off every category is a no-op.
func New(cfg config.LoggingConfig) (*Logger, error) {
	if !cfg.DebugMode {
		return &Logger{base: zap.NewNop(), cfg: cfg}, nil
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer
	)
	if cfg.File == "" || cfg.File == Stderr {
		sink = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		sink = zapcore.AddSync(f)
		closer = f
	}

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, sink, level)
	return &Logger{
		base:   zap.New(core, zap.AddCaller()),
		cfg:    cfg,
		closer: closer,
	}, nil
}

// NewWithCore wraps an existing core; used by tests and embedders that
// already own a zap setup.
func NewWithCore(core zapcore.Core, cfg config.LoggingConfig) *Logger {
	return &Logger{base: zap.New(core), cfg: cfg}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zap.NewNop()}
}

// For returns the logger for a category, or a no-op logger if the category
// is disabled.
func (l *Logger) For(category Category) *zap.Logger {
	if l == nil || !l.cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return l.base.Named(string(category))
}

// Sync flushes buffered entries and closes the log file, if any.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	_ = l.base.Sync()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		return err
	}
	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}
