// =============================================================================
// ublkit - Logging Setup
// =============================================================================
//
// This module wires log/slog to a rotating file sink (lumberjack). The
// logging.rotation / retention / compression settings map onto lumberjack:
//
//   rotation "500 MB"   -> MaxSize 500
//   retention "10 days" -> MaxAge 10
//   compression zip/gzip -> Compress true (lumberjack gzips; "zip" is
//                           accepted for compatibility with older configs)
//
// The configured logger becomes the process default so every package logs
// through slog without carrying the handle around.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
)

// Setup configures the default slog logger from the logging section.
// When verbose is true the level is forced to debug and log lines are
// mirrored to stderr.
func Setup(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	maxSizeMB, err := parseRotation(cfg.Logging.Rotation)
	if err != nil {
		return nil, err
	}
	maxAgeDays, err := parseRetention(cfg.Logging.Retention)
	if err != nil {
		return nil, err
	}

	logPath := cfg.Logging.File
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.Output.LogsDir, logPath)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, &types.IOError{Op: "write", Path: filepath.Dir(logPath), Err: err}
	}

	var sink io.Writer = &lumberjack.Logger{
		Filename: logPath,
		MaxSize:  maxSizeMB,
		MaxAge:   maxAgeDays,
		Compress: strings.ToLower(cfg.Logging.Compression) != "none",
	}
	if verbose {
		sink = io.MultiWriter(sink, os.Stderr)
	}

	logger := slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, &types.ConfigError{Key: "logging.level", Err: fmt.Errorf("unknown level %q", s)}
}

// parseRotation parses a size like "500 MB" or "1 GB" into megabytes.
func parseRotation(s string) (int, error) {
	fields := strings.Fields(strings.ToUpper(s))
	if len(fields) != 2 {
		return 0, &types.ConfigError{Key: "logging.rotation", Err: fmt.Errorf("expected \"<n> MB\" or \"<n> GB\", got %q", s)}
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, &types.ConfigError{Key: "logging.rotation", Err: fmt.Errorf("invalid size %q", s)}
	}
	switch fields[1] {
	case "MB":
		return n, nil
	case "GB":
		return n * 1024, nil
	}
	return 0, &types.ConfigError{Key: "logging.rotation", Err: fmt.Errorf("unknown unit %q", fields[1])}
}

// parseRetention parses a duration like "10 days" into days.
func parseRetention(s string) (int, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 || (fields[1] != "day" && fields[1] != "days") {
		return 0, &types.ConfigError{Key: "logging.retention", Err: fmt.Errorf("expected \"<n> days\", got %q", s)}
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, &types.ConfigError{Key: "logging.retention", Err: fmt.Errorf("invalid day count %q", s)}
	}
	return n, nil
}
