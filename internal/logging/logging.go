// Package logging builds the zerolog loggers used by the CLI and the API
// server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, file path
}

// DefaultConfig logs info and above as JSON to stderr, keeping stdout free
// for transcript output.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: "stderr"}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing to cfg.Output. The returned closer releases
// the log file when Output is a path; for stdout and stderr it does
// nothing. Callers close it once the logger is no longer used.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	switch cfg.Output {
	case "", "stderr":
		return NewWithWriter(cfg, os.Stderr), nopCloser{}, nil
	case "stdout":
		return NewWithWriter(cfg, os.Stdout), nopCloser{}, nil
	}
	file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log output: %w", err)
	}
	return NewWithWriter(cfg, file), file, nil
}

// NewWithWriter creates a logger writing to w, ignoring cfg.Output.
// An unknown level falls back to info.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
