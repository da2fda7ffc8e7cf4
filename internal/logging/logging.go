// Package logging builds the process logger once at start-up. Nothing in the
// module logs through a global it did not receive from here.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"go_vocab_quiz/internal/config"
)

// ParseLevel maps a config level name onto a slog level. ok is false for
// unknown names, which map to INFO.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a logger writing to w and, when cfg.Dir is set, to a
// timestamped file in that directory. appEnv "dev" selects the tint handler,
// anything else JSON. The returned close func closes the log file.
func New(cfg config.LogConfig, appEnv string, w io.Writer) (*slog.Logger, func() error, error) {
	logLevel := new(slog.LevelVar)
	level, known := ParseLevel(cfg.Level)
	logLevel.Set(level)

	closeFn := func() error { return nil }
	out := w
	var logFile string
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, closeFn, fmt.Errorf("logging.New: create log dir: %w", err)
		}
		logFile = filepath.Join(cfg.Dir, fmt.Sprintf("%s_%s.log", config.AppName, time.Now().Format("20060102_150405")))
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("logging.New: open log file: %w", err)
		}
		out = io.MultiWriter(w, f)
		closeFn = f.Close
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(out, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
			// colour codes would end up in the log file
			NoColor: logFile != "",
		})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}

	logger := slog.New(handler)
	if !known {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Level))
	}
	if logFile != "" {
		logger.Debug("Logging to file", slog.String("path", logFile))
	}
	return logger, closeFn, nil
}
