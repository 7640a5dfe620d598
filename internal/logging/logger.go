// Package logging provides the client's slog logger. Output goes to a
// file; stdout and stderr belong to the TUI while it runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/snapsite/snapsite/internal/config"
)

// FilePermissions for log files (rw-r--r--).
const FilePermissions = 0644

// New builds a logger from the config. With no file configured the
// returned logger discards everything. The returned closer is safe to
// call either way.
func New(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return logger, func() error { return nil }, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, FilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return slog.New(handler), f.Close, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
