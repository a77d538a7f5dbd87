package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a text logger writing to stderr and, when logFile is
// set, appending to logFile. The returned close function releases the file.
func NewLogger(logFile string, verbose bool) (*slog.Logger, func() error, error) {
	return newLogger(os.Stderr, logFile, verbose)
}

func newLogger(console io.Writer, logFile string, verbose bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	out := console
	closeFn := func() error { return nil }

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(console, file)
		closeFn = file.Close
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}
