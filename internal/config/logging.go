package config

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/config/errz"
	"github.com/atlanticdynamic/kgames/internal/logging/writers"
)

// LoggingConfig contains logging-related configuration options
type LoggingConfig struct {
	Format LogFormat `toml:"format"`
	Level  LogLevel  `toml:"level"`
	// Output is stderr, stdout, discard, or a file path.
	Output string `toml:"output" env_interpolation:"path"`
}

// LogFormat represents the logging output format
type LogFormat string

// LogLevel represents the logging verbosity level
type LogLevel string

// Constants for LogFormat
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Constants for LogLevel
const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// String returns the string representation of LogFormat
func (f LogFormat) String() string {
	return string(f)
}

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the LogFormat is valid
func (f LogFormat) IsValid() bool {
	switch f {
	case LogFormatText, LogFormatJSON:
		return true
	default:
		return false
	}
}

// IsValid checks if the LogLevel is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// LogLevelFromString converts a string to a LogLevel
func LogLevelFromString(level string) (LogLevel, error) {
	l := LogLevel(strings.ToLower(level))
	if l == "warning" {
		l = LogLevelWarn
	}
	if !l.IsValid() {
		return LogLevelInfo, fmt.Errorf("%w: %s", errz.ErrInvalidLogLevel, level)
	}
	return l, nil
}

// Validate checks the logging section.
func (lc *LoggingConfig) Validate() error {
	var errs []error
	if !lc.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrInvalidLogFormat, lc.Format))
	}
	if !lc.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrInvalidLogLevel, lc.Level))
	}
	if lc.Output == "" {
		errs = append(errs, fmt.Errorf("%w: logging.output", errz.ErrMissingRequiredField))
	} else if writers.ParseWriterType(lc.Output) == writers.WriterTypeInvalid {
		errs = append(errs, fmt.Errorf("%w: logging.output: %q", errz.ErrInvalidValue, lc.Output))
	}
	return joinErrors(errs)
}
