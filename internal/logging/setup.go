// Package logging builds the slog handlers used by the CLI and the console.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/logging/writers"
	"github.com/charmbracelet/log"
)

// levelOptions is what a level name turns into for either handler.
type levelOptions struct {
	level     slog.Level
	caller    bool
	timestamp bool
}

// parseLevel maps a level name to handler options. "trace" is debug with
// caller and timestamps; unknown names fall back to info.
func parseLevel(logLevel string) levelOptions {
	switch strings.ToLower(logLevel) {
	case "trace":
		return levelOptions{level: slog.LevelDebug, caller: true, timestamp: true}
	case "debug":
		return levelOptions{level: slog.LevelDebug, timestamp: true}
	case "warn", "warning":
		return levelOptions{level: slog.LevelWarn}
	case "error":
		return levelOptions{level: slog.LevelError}
	default:
		return levelOptions{level: slog.LevelInfo}
	}
}

// SetupHandlerText returns a charmbracelet/log handler writing to writer,
// or to stderr when writer is nil.
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}
	opts := parseLevel(logLevel)
	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: opts.timestamp,
		ReportCaller:    opts.caller,
		Level:           log.Level(opts.level),
	})
}

// SetupHandlerJSON returns a JSON handler writing to writer, or to stdout
// when writer is nil.
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}
	opts := parseLevel(logLevel)
	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     opts.level,
		AddSource: opts.caller,
	})
}

// SetupLogger installs a text handler on stderr as the default logger.
func SetupLogger(logLevel string) {
	slog.SetDefault(slog.New(SetupHandlerText(logLevel, nil)))
}

// SetupHandler builds a handler for the given format ("text" or "json") that
// writes to output as understood by writers.CreateWriter.
func SetupHandler(logLevel, format, output string) (slog.Handler, error) {
	w, err := writers.CreateWriter(output)
	if err != nil {
		return nil, fmt.Errorf("log output: %w", err)
	}
	switch strings.ToLower(format) {
	case "", "text":
		return SetupHandlerText(logLevel, w), nil
	case "json":
		return SetupHandlerJSON(logLevel, w), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}
