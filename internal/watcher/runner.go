// Package watcher follows the script source directories with fsnotify and
// signals when their contents change. Directories that cannot be watched
// are polled instead. It never touches script state: the frame runner
// receives the signal and performs the reload on its own goroutine.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/finitestate"
	"github.com/fsnotify/fsnotify"
	"github.com/robbyt/go-supervisor/supervisor"
)

const DefaultInterval = time.Second

var (
	_ supervisor.Runnable   = (*Runner)(nil)
	_ supervisor.Reloadable = (*Runner)(nil)
)

// Snapshot maps script paths to their modification times. An unreadable
// source directory is recorded under its own path with a zero time.
type Snapshot map[string]time.Time

// Scan snapshots every file carrying extension in sources.
func Scan(sources []engine.Source, extension string) Snapshot {
	snap := make(Snapshot)
	for _, src := range sources {
		entries, err := os.ReadDir(src.Path)
		if err != nil {
			snap[src.Path] = time.Time{}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != extension {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			snap[filepath.Join(src.Path, entry.Name())] = info.ModTime()
		}
	}
	return snap
}

// Equal reports whether both snapshots hold the same paths and times.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.EqualFunc(s, other, func(a, b time.Time) bool { return a.Equal(b) })
}

// Runner is a supervised runnable that watches sources for script changes.
// Sources fsnotify cannot follow, such as a directory that does not exist
// yet, are rescanned every interval.
type Runner struct {
	sources   []engine.Source
	extension string
	interval  time.Duration

	changes chan struct{}
	last    Snapshot

	logger *slog.Logger
	fsm    finitestate.Machine

	mu        sync.Mutex
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a watcher for sources.
func NewRunner(sources []engine.Source, opts ...Option) (*Runner, error) {
	r := &Runner{
		sources:   sources,
		extension: ".star",
		interval:  DefaultInterval,
		changes:   make(chan struct{}, 1),
		logger:    slog.Default().WithGroup("watcher.Runner"),
		parentCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}

	fsm, err := finitestate.New(r.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	r.fsm = fsm
	return r, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "watcher.Runner"
}

// Changes delivers one coalesced signal per detected change.
func (r *Runner) Changes() <-chan struct{} {
	return r.changes
}

// Run implements the supervisor.Runnable interface
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner", "sources", len(r.sources), "interval", r.interval)
	if err := finitestate.Boot(r.fsm); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.runCancel = cancel
	r.mu.Unlock()
	defer cancel()

	r.last = Scan(r.sources, r.extension)

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		finitestate.Fail(r.fsm, r.logger)
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	notifier, unwatched := r.watch()
	var events <-chan fsnotify.Event
	var errs <-chan error
	if notifier != nil {
		defer func() {
			if err := notifier.Close(); err != nil {
				r.logger.Warn("Failed to close fsnotify watcher", "error", err)
			}
		}()
		events, errs = notifier.Events, notifier.Errors
	}

	var tick <-chan time.Time
	if unwatched {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.parentCtx.Done():
			r.logger.Debug("Parent context canceled")
			return finitestate.Shutdown(r.fsm, r.logger)
		case <-runCtx.Done():
			r.logger.Debug("Run context canceled")
			return finitestate.Shutdown(r.fsm, r.logger)
		case ev := <-events:
			r.handleEvent(ev)
		case err := <-errs:
			if err != nil {
				r.logger.Warn("fsnotify error", "error", err)
			}
		case <-tick:
			r.poll()
		}
	}
}

// watch registers every source directory with fsnotify. unwatched is true
// when at least one source must be polled.
func (r *Runner) watch() (w *fsnotify.Watcher, unwatched bool) {
	if len(r.sources) == 0 {
		return nil, false
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger.Warn("fsnotify unavailable, polling sources", "error", err)
		return nil, true
	}
	added := 0
	for _, src := range r.sources {
		if err := w.Add(src.Path); err != nil {
			r.logger.Debug("Polling source", "source", src.Name, "path", src.Path, "error", err)
			unwatched = true
			continue
		}
		added++
	}
	if added == 0 {
		if err := w.Close(); err != nil {
			r.logger.Warn("Failed to close fsnotify watcher", "error", err)
		}
		return nil, true
	}
	return w, unwatched
}

// handleEvent signals for events on script files. Removing or renaming a
// watched source directory also signals.
func (r *Runner) handleEvent(ev fsnotify.Event) {
	if filepath.Ext(ev.Name) != r.extension && !r.isSource(ev.Name) {
		return
	}
	r.logger.Debug("Source event", "name", ev.Name, "op", ev.Op.String())
	r.last = Scan(r.sources, r.extension)
	r.notify()
}

func (r *Runner) isSource(path string) bool {
	for _, src := range r.sources {
		if filepath.Clean(src.Path) == filepath.Clean(path) {
			return true
		}
	}
	return false
}

// poll rescans the sources and signals when anything changed.
func (r *Runner) poll() {
	snap := Scan(r.sources, r.extension)
	if snap.Equal(r.last) {
		return
	}
	r.logger.Debug("Source change detected", "files", len(snap))
	r.last = snap
	r.notify()
}

func (r *Runner) notify() {
	select {
	case r.changes <- struct{}{}:
	default:
		// a signal is already pending
	}
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runCancel != nil {
		r.runCancel()
	}
}

// Reload implements the supervisor.Reloadable interface. It forces a signal
// so a SIGHUP reloads every script regardless of timestamps.
func (r *Runner) Reload() {
	r.logger.Debug("Forced reload requested")
	if err := r.fsm.TransitionIfCurrentState(finitestate.StatusRunning, finitestate.StatusReloading); err != nil {
		r.logger.Warn("Reload ignored", "state", r.fsm.GetState(), "error", err)
		return
	}
	r.notify()
	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		r.logger.Error("Failed to transition back to running state", "error", err)
	}
}
