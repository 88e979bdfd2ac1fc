// Package starlark implements the script host on top of go.starlark.net.
//
// The host keeps an ordered set of records keyed by path. A load pass walks
// every source directory in order, compiles new files, recompiles changed ones
// in place and prunes records whose files disappeared. All methods must be
// called from the one goroutine that owns the host.
package starlark

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"time"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/gofrs/uuid/v5"
	starlarkLib "go.starlark.net/starlark"
)

const (
	DefaultExtension = ".star"
	DefaultMaxSteps  = 10_000_000
)

var _ engine.Engine = (*Host)(nil)

// Host owns the live records, the Starlark execution settings and the
// capability surface bound into every script.
type Host struct {
	surface     *capability.Surface
	predeclared starlarkLib.StringDict
	// compileEnv holds every name a script may reference without defining
	// it: the surface plus the color, key and mouse constants.
	compileEnv starlarkLib.StringDict
	sink        engine.Sink
	logger      *slog.Logger
	extension   string
	maxSteps    uint64

	records []*Record
	sources []engine.Source
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used by the host.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithSink sets the console the host reports progress and script output to.
func WithSink(sink engine.Sink) Option {
	return func(h *Host) {
		h.sink = sink
	}
}

// WithExtension sets the file extension scripts must carry.
func WithExtension(ext string) Option {
	return func(h *Host) {
		if ext != "" {
			h.extension = ext
		}
	}
}

// WithMaxSteps sets the per-call execution step budget. Zero disables it.
func WithMaxSteps(steps uint64) Option {
	return func(h *Host) {
		h.maxSteps = steps
	}
}

// New creates a host bound to surface.
func New(surface *capability.Surface, opts ...Option) *Host {
	h := &Host{
		surface:   surface,
		logger:    slog.Default().WithGroup("starlark.Host"),
		extension: DefaultExtension,
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.sink == nil {
		h.sink = logSink{logger: h.logger}
	}
	h.predeclared = surface.Predeclared()
	h.compileEnv = maps.Clone(h.predeclared)
	maps.Copy(h.compileEnv, capability.Constants())
	return h
}

// Extension returns the file extension scripts must carry.
func (h *Host) Extension() string {
	return h.extension
}

// Load runs one load pass over sources. It returns engine.ErrLoadFailed when
// the pass appended anything to ledger.
func (h *Host) Load(sources []engine.Source, ledger *engine.Ledger) error {
	if ledger == nil {
		ledger = &engine.Ledger{}
	}
	h.sources = slices.Clone(sources)

	passID := uuid.Must(uuid.NewV6())
	logger := h.logger.With("pass", passID.String())
	logger.Debug("Load pass started", "sources", len(sources), "records", len(h.records))

	before := ledger.Len()
	enumerated := make(map[string]struct{}, len(sources))
	seen := make(map[string]struct{})

	for _, src := range sources {
		entries, err := os.ReadDir(src.Path)
		if err != nil {
			h.sink.Err(fmt.Sprintf("Cannot read %s: %v", src, err))
			ledger.Append(src.Path, fmt.Errorf("%w: %w", engine.ErrReadDir, err))
			continue
		}
		enumerated[src.Path] = struct{}{}

		for _, entry := range entries {
			path := filepath.Join(src.Path, entry.Name())
			if entry.IsDir() {
				continue
			}
			if filepath.Ext(path) != h.extension {
				h.sink.Log(fmt.Sprintf("Skipping file with unknown (not %s) extension: %s", h.extension, path))
				continue
			}
			info, err := entry.Info()
			if err != nil {
				h.sink.Log(fmt.Sprintf("Skipping file: %v", err))
				continue
			}
			seen[path] = struct{}{}

			if err := h.loadFile(src, path, info.ModTime()); err != nil {
				logger.Debug("Script failed to load", "path", path, "error", err)
				ledger.Append(path, err)
			}
		}
	}

	h.prune(enumerated, seen)

	failures := ledger.Len() - before
	logger.Debug("Load pass finished", "records", len(h.records), "failures", failures)
	if failures > 0 {
		return engine.ErrLoadFailed
	}
	return nil
}

// loadFile brings the record for path up to date with the file on disk.
func (h *Host) loadFile(src engine.Source, path string, modTime time.Time) error {
	if idx := h.IndexOf(path); idx >= 0 {
		rec := h.records[idx]
		if rec.modTime.Equal(modTime) {
			return nil
		}
		u, scope, globals, err := h.build(path)
		if err != nil {
			return err
		}
		rec.unit, rec.scope, rec.globals = u, scope, globals
		rec.modTime = modTime
		h.sink.Log(fmt.Sprintf("Reloaded script %s", path))
		return nil
	}

	h.sink.Log(fmt.Sprintf("Adding new script %s", path))
	u, scope, globals, err := h.build(path)
	if err != nil {
		return err
	}
	h.records = append(h.records, &Record{
		path:      path,
		source:    src.Path,
		isExample: src.IsExample,
		modTime:   modTime,
		unit:      u,
		scope:     scope,
		globals:   globals,
	})
	return nil
}

// build reads, compiles and initializes the script at path without touching
// any existing record.
func (h *Host) build(path string) (*unit, starlarkLib.StringDict, starlarkLib.StringDict, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, nil, nil, err
	}
	u, err := compile(path, src, h.compileEnv)
	if err != nil {
		return nil, nil, nil, err
	}
	scope, globals, err := h.initialize(path, u)
	if err != nil {
		return nil, nil, nil, err
	}
	return u, scope, globals, nil
}

// initialize populates a fresh scope for u and runs its top-level code once.
func (h *Host) initialize(path string, u *unit) (starlarkLib.StringDict, starlarkLib.StringDict, error) {
	scope := h.populate(u)
	thread := h.newThread(path)

	var globals starlarkLib.StringDict
	err := guard(func() error {
		var err error
		globals, err = u.program.Init(thread, scope)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", engine.ErrInit, err)
	}
	return scope, globals, nil
}

// populate builds the private scope of one script: the host surface, fresh
// copies of the constants and the literals captured at compile time.
func (h *Host) populate(u *unit) starlarkLib.StringDict {
	scope := maps.Clone(h.predeclared)
	maps.Copy(scope, capability.Constants())
	maps.Copy(scope, u.literals)
	return scope
}

// prune drops records whose source was enumerated in this pass but whose file
// was not seen. Records from unreadable sources are kept.
func (h *Host) prune(enumerated, seen map[string]struct{}) {
	h.records = slices.DeleteFunc(h.records, func(r *Record) bool {
		if _, ok := enumerated[r.source]; !ok {
			return false
		}
		if _, ok := seen[r.path]; ok {
			return false
		}
		h.sink.Log(fmt.Sprintf("Removing deleted script %s", r.path))
		return true
	})
}

// Reload repeats Load over the sources of the most recent Load.
func (h *Host) Reload(ledger *engine.Ledger) error {
	return h.Load(h.sources, ledger)
}

// Sources returns the sources of the most recent Load.
func (h *Host) Sources() []engine.Source {
	return slices.Clone(h.sources)
}

// Call invokes the zero-argument function name in the script at index.
func (h *Host) Call(index int, name string) error {
	rec, err := h.record(index)
	if err != nil {
		return &engine.InvocationError{Index: index, Entry: name, Err: err}
	}
	invocationErr := func(err error) error {
		return &engine.InvocationError{Index: index, Path: rec.path, Entry: name, Err: err}
	}

	v, ok := rec.globals[name]
	if !ok || v == nil {
		return invocationErr(engine.ErrEntryPointNotFound)
	}
	fn, ok := v.(starlarkLib.Callable)
	if !ok {
		return invocationErr(fmt.Errorf("%w: %s is a %s", engine.ErrNotCallable, name, v.Type()))
	}

	thread := h.newThread(rec.path)
	err = guard(func() error {
		_, err := starlarkLib.Call(thread, fn, nil, nil)
		return err
	})
	if err != nil {
		return invocationErr(err)
	}
	return nil
}

// Reset rebuilds the scope of the script at index from its current unit and
// runs its top-level code again. On failure the previous state is kept.
func (h *Host) Reset(index int) error {
	rec, err := h.record(index)
	if err != nil {
		return err
	}
	scope, globals, err := h.initialize(rec.path, rec.unit)
	if err != nil {
		return err
	}
	rec.scope, rec.globals = scope, globals
	h.sink.Log(fmt.Sprintf("Reset script %s", rec.path))
	return nil
}

// Len returns the number of live records.
func (h *Host) Len() int {
	return len(h.records)
}

// Scripts returns the live scripts in load order.
func (h *Host) Scripts() []engine.Script {
	out := make([]engine.Script, len(h.records))
	for i, r := range h.records {
		out[i] = r
	}
	return out
}

// Records returns the live records in load order.
func (h *Host) Records() []*Record {
	return slices.Clone(h.records)
}

// Record returns the record at index.
func (h *Host) Record(index int) (*Record, error) {
	return h.record(index)
}

// IndexOf returns the index of the record loaded from path, or -1.
func (h *Host) IndexOf(path string) int {
	return slices.IndexFunc(h.records, func(r *Record) bool {
		return r.path == path
	})
}

func (h *Host) record(index int) (*Record, error) {
	if index < 0 || index >= len(h.records) {
		return nil, fmt.Errorf("%w: %d (have %d)", engine.ErrIndexOutOfRange, index, len(h.records))
	}
	return h.records[index], nil
}

func (h *Host) newThread(path string) *starlarkLib.Thread {
	thread := &starlarkLib.Thread{
		Name: path,
		Print: func(_ *starlarkLib.Thread, msg string) {
			h.sink.Log(msg)
		},
	}
	if h.maxSteps > 0 {
		thread.SetMaxExecutionSteps(h.maxSteps)
	}
	return thread
}

// guard runs fn and converts a panic into ErrPanic.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", engine.ErrPanic, r, debug.Stack())
		}
	}()
	return fn()
}

// logSink is the sink used when none is configured.
type logSink struct {
	logger *slog.Logger
}

func (s logSink) Log(text string) {
	s.logger.Info(text)
}

func (s logSink) Warn(text string) {
	s.logger.Warn(text)
}

func (s logSink) Err(text string) {
	s.logger.Error(text)
}
