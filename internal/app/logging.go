package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/config"
)

// setupLogging installs the process logger. The TUI owns the terminal, so
// interactive runs log JSON to cfg.LogFile; headless runs log text to stderr.
func setupLogging(cfg config.Config, headless bool) (*slog.Logger, func() error, error) {
	if headless {
		logger := newLogger(os.Stderr, false, cfg.Level())
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	file, err := openLogFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(file, true, cfg.Level())
	slog.SetDefault(logger)
	return logger, file.Close, nil
}

func newLogger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
