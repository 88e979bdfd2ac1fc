// Package console is the sink scripts and the host report to. Every message
// goes through slog to the configured handler and is kept in a go-loglater
// history for on-screen presentation.
package console

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
)

// MaxHistory is the number of messages kept for on-screen presentation.
// Older messages are dropped as new ones arrive.
const MaxHistory = 500

var _ engine.Sink = (*Console)(nil)

// Line is one captured console message.
type Line struct {
	Time  time.Time
	Level slog.Level
	Text  string
	Note  bool
}

// Console implements engine.Sink with an enable toggle.
type Console struct {
	logger    *slog.Logger
	collector *loglater.LogCollector
	enabled   atomic.Bool
}

// New creates an enabled console writing to handler. A nil handler only
// keeps the history.
func New(handler slog.Handler) *Console {
	store := storage.NewRecordStorage(storage.WithMaxSize(MaxHistory))
	collector := loglater.NewLogCollector(handler, loglater.WithStorage(store))
	c := &Console{
		logger:    slog.New(collector).With("component", "console"),
		collector: collector,
	}
	c.enabled.Store(true)
	return c
}

// Log records an informational message while the console is enabled.
func (c *Console) Log(text string) {
	if c.enabled.Load() {
		c.logger.Info(text)
	}
}

// Err records an error message while the console is enabled.
func (c *Console) Err(text string) {
	if c.enabled.Load() {
		c.logger.Error(text)
	}
}

// Warn records a warning. Warnings ignore the toggle.
func (c *Console) Warn(text string) {
	c.logger.Warn(text)
}

// Note records a message that is always shown, such as toggle feedback.
func (c *Console) Note(text string) {
	c.logger.Info(text, "note", true)
}

// Toggle flips logging on or off and returns the new state.
func (c *Console) Toggle() bool {
	for {
		old := c.enabled.Load()
		if c.enabled.CompareAndSwap(old, !old) {
			if old {
				c.Note("Logging disabled")
			} else {
				c.Note("Logging enabled")
			}
			return !old
		}
	}
}

// Enabled reports whether Log and Err are currently recorded.
func (c *Console) Enabled() bool {
	return c.enabled.Load()
}

// History returns the retained messages in order, at most MaxHistory.
func (c *Console) History() []Line {
	records := c.collector.GetLogs()
	lines := make([]Line, 0, len(records))
	for _, r := range records {
		line := Line{Time: r.Time, Level: r.Level, Text: r.Message}
		for _, a := range r.Attrs {
			if a.Key == "note" {
				line.Note = true
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Tail returns the last n captured messages.
func (c *Console) Tail(n int) []Line {
	lines := c.History()
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Replay writes the captured history to handler.
func (c *Console) Replay(handler slog.Handler) error {
	return c.collector.PlayLogs(handler)
}
