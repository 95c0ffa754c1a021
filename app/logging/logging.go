// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Debug   bool
	LogFile string // optional, rotated by lumberjack
	RunID   string
}

// Setup installs the default logger and returns a function flushing and
// closing the log file, if any.
func Setup(opts Options) (func() error, error) {
	var output io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		output = io.MultiWriter(os.Stderr, fileWriter)
		closeFn = fileWriter.Close
	}

	slog.SetDefault(New(output, opts))
	return closeFn, nil
}

func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if opts.RunID != "" {
		logger = logger.With("run", opts.RunID)
	}
	return logger
}
