// Package frame drives the single-threaded update/draw loop. The runner's
// goroutine owns the script host: reloads, key handling and script calls all
// happen there, one frame at a time.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atlanticdynamic/kgames/internal/app"
	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/catalog"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/errorpage"
	"github.com/atlanticdynamic/kgames/internal/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

// Entry points every script is expected to define.
const (
	EntryUpdate = "update"
	EntryDraw   = "draw"
)

var _ supervisor.Runnable = (*Runner)(nil)

// Window is the backend the runner drives, framed by BeginFrame and EndFrame.
type Window interface {
	capability.Backend
	BeginFrame()
	EndFrame()
}

// Stats summarizes a run.
type Stats struct {
	Frames           int
	Reloads          int
	InvocationErrors int
	Selected         string
}

// Runner is a supervised runnable ticking at the configured frame rate.
type Runner struct {
	app     *app.Context
	host    engine.Engine
	window  Window
	changes <-chan struct{}

	maxFrames int
	initial   string
	onDone    func()

	ledger  *engine.Ledger
	page    *errorpage.Page
	menu    menu
	showFPS bool

	statsMu sync.Mutex
	stats   Stats

	logger *slog.Logger
	fsm    finitestate.Machine

	mu        sync.Mutex
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a frame runner for host drawing to window.
func NewRunner(appCtx *app.Context, host engine.Engine, window Window, opts ...Option) (*Runner, error) {
	if appCtx == nil || host == nil || window == nil {
		return nil, errors.New("frame runner needs an app context, a host and a window")
	}
	r := &Runner{
		app:       appCtx,
		host:      host,
		window:    window,
		ledger:    &engine.Ledger{},
		logger:    appCtx.Logger.WithGroup("frame.Runner"),
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
	return "frame.Runner"
}

// Run implements the supervisor.Runnable interface
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner", "max_frames", r.maxFrames)
	if err := finitestate.Boot(r.fsm); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.runCancel = cancel
	r.mu.Unlock()
	defer cancel()

	r.Boot()

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		finitestate.Fail(r.fsm, r.logger)
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	fps := max(r.app.Config.Window.FPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-r.parentCtx.Done():
			r.logger.Debug("Parent context canceled")
			return finitestate.Shutdown(r.fsm, r.logger)
		case <-runCtx.Done():
			r.logger.Debug("Run context canceled")
			return finitestate.Shutdown(r.fsm, r.logger)
		case <-ticker.C:
			r.Step()
			if r.maxFrames > 0 && r.Stats().Frames >= r.maxFrames {
				r.logger.Info("Frame limit reached", "frames", r.maxFrames)
				if r.onDone != nil {
					r.onDone()
				}
				return finitestate.Shutdown(r.fsm, r.logger)
			}
		}
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

// Stats returns a copy of the run counters.
func (r *Runner) Stats() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

func (r *Runner) updateStats(fn func(*Stats)) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	fn(&r.stats)
}

// Boot runs the first load pass and applies the initial selection. A failed
// pass opens the error page.
func (r *Runner) Boot() {
	r.ledger.Clear()
	if err := r.host.Load(r.app.Sources(), r.ledger); err != nil {
		r.openErrorPage(err)
	}
	r.app.Console.Log(fmt.Sprintf("Loaded %d scripts", r.host.Len()))

	if r.initial == "" {
		return
	}
	if path, ok := r.find(r.initial); ok {
		r.selectScript(path)
		return
	}
	r.app.Console.Warn(fmt.Sprintf("No script named %q", r.initial))
}

// find resolves a script by exact path, exact name, then fuzzy name.
func (r *Runner) find(name string) (string, bool) {
	scripts := r.host.Scripts()
	for _, s := range scripts {
		if s.Path() == name || s.Name() == name {
			return s.Path(), true
		}
	}
	if m, ok := catalog.Best(catalog.FromScripts(scripts), name); ok {
		return m.Path, true
	}
	return "", false
}

// Selected returns the path of the running script, or "".
func (r *Runner) Selected() string {
	return r.Stats().Selected
}

// ErrorPage returns the open error page, or nil.
func (r *Runner) ErrorPage() *errorpage.Page {
	return r.page
}

// Step runs exactly one frame.
func (r *Runner) Step() {
	w := r.window
	w.BeginFrame()
	defer w.EndFrame()
	r.updateStats(func(s *Stats) { s.Frames++ })

	pageOpen := r.page != nil
	reload := r.drainChanges()
	if w.KeyPressed(capability.KeyF5) && !pageOpen {
		reload = true
	}
	if reload {
		r.Reload()
	}

	if w.KeyPressed(capability.KeyF10) {
		r.app.Console.Toggle()
	}
	if w.KeyPressed(capability.KeyF12) {
		r.showFPS = !r.showFPS
	}
	if w.KeyPressed(capability.KeyF1) {
		th := r.app.CycleTheme()
		if r.page != nil {
			r.page.Theme = th
		}
	}

	if pageOpen && r.page != nil {
		if key, ok := w.LastKeyPressed(); ok && !r.page.HandleKey(key, r.host) {
			r.closeErrorPage()
			r.drawOverlay()
			return
		}
	}
	if r.page != nil {
		r.page.Draw(w, w.ScreenWidth(), w.ScreenHeight())
		r.drawOverlay()
		return
	}

	selected := r.Selected()
	if selected != "" && w.KeyPressed(capability.KeyEscape) {
		r.app.Console.Log(fmt.Sprintf("Leaving %s", selected))
		r.selectScript("")
		selected = ""
	}

	if selected == "" {
		r.menu.step(r)
		r.drawOverlay()
		return
	}

	idx := r.host.IndexOf(selected)
	if idx < 0 {
		r.app.Console.Warn(fmt.Sprintf("Script %s is gone", selected))
		r.selectScript("")
		r.drawOverlay()
		return
	}
	r.call(idx, EntryUpdate)
	r.call(idx, EntryDraw)
	r.drawOverlay()
}

// drainChanges consumes every pending watcher signal.
func (r *Runner) drainChanges() bool {
	if r.changes == nil {
		return false
	}
	pending := false
	for {
		select {
		case _, ok := <-r.changes:
			if !ok {
				r.changes = nil
				return pending
			}
			pending = true
		default:
			return pending
		}
	}
}

// Reload repeats the load pass. Failures open the error page; a clean pass
// closes it.
func (r *Runner) Reload() {
	r.app.Console.Log("### Reloading scripts")
	r.updateStats(func(s *Stats) { s.Reloads++ })
	r.ledger.Clear()
	if err := r.host.Reload(r.ledger); err != nil {
		r.openErrorPage(err)
		return
	}
	r.closeErrorPage()
}

func (r *Runner) openErrorPage(err error) {
	r.logger.Warn("Load pass failed", "failures", r.ledger.Len(), "error", err)
	for _, f := range r.ledger.Entries() {
		r.app.Console.Err(f.Error())
	}
	r.page = errorpage.New(err.Error(), r.ledger, r.app.Theme)
}

func (r *Runner) closeErrorPage() {
	r.page = nil
}

func (r *Runner) selectScript(path string) {
	r.updateStats(func(s *Stats) { s.Selected = path })
	if path == "" {
		return
	}
	if idx := r.host.IndexOf(path); idx >= 0 {
		if err := r.host.Reset(idx); err != nil {
			r.app.Console.Err(fmt.Sprintf("Error while resetting script: %v", err))
		}
	}
	r.app.Console.Log(fmt.Sprintf("Playing %s", path))
}

// call invokes one entry point. Failures are reported and the frame goes on.
func (r *Runner) call(idx int, entry string) {
	err := r.host.Call(idx, entry)
	if err == nil {
		return
	}
	r.updateStats(func(s *Stats) { s.InvocationErrors++ })
	r.app.Console.Err(fmt.Sprintf("Error while executing script -> %s(): %v", entry, err))

	var invErr *engine.InvocationError
	if errors.As(err, &invErr) {
		r.logger.Debug("Invocation failed", "path", invErr.Path, "entry", invErr.Entry, "error", invErr.Err)
	}
}

func (r *Runner) drawOverlay() {
	if !r.showFPS {
		return
	}
	fps := r.window.FPS()
	color := capability.RGBA{R: 0.9, G: 0.16, B: 0.22, A: 1}
	switch {
	case fps >= 50:
		color = capability.RGBA{G: 0.89, B: 0.19, A: 1}
	case fps >= 30:
		color = capability.RGBA{R: 1, G: 0.63, A: 1}
	}
	r.window.Text(fmt.Sprintf("FPS: %d", fps), 0, 20, 20, color)
}
