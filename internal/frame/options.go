package frame

import (
	"context"
	"log/slog"
)

type Option func(*Runner)

// WithLogger sets a custom logger for the Runner instance.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Runner instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Runner) {
		r.logger = slog.New(handler).WithGroup("frame.Runner")
	}
}

// WithContext sets a custom parent context for the Runner instance.
func WithContext(ctx context.Context) Option {
	return func(r *Runner) {
		r.parentCtx = ctx
	}
}

// WithChanges sets the channel reload requests arrive on, usually the
// watcher's Changes channel.
func WithChanges(ch <-chan struct{}) Option {
	return func(r *Runner) {
		r.changes = ch
	}
}

// WithMaxFrames stops the runner after n frames. Zero runs until stopped.
func WithMaxFrames(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxFrames = n
		}
	}
}

// WithScript selects the script with this name or path after the first load.
func WithScript(name string) Option {
	return func(r *Runner) {
		r.initial = name
	}
}

// WithOnDone registers a callback invoked when the frame limit is reached.
func WithOnDone(fn func()) Option {
	return func(r *Runner) {
		r.onDone = fn
	}
}
