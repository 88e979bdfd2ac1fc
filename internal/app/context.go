// Package app builds the explicit application context that replaces global
// state: resolved directories, the asset cache, the console and the logger.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/kgames/internal/assets"
	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/config"
	"github.com/atlanticdynamic/kgames/internal/console"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/engine/starlark"
	"github.com/atlanticdynamic/kgames/internal/theme"
)

// Dirs holds the resolved application directories.
type Dirs struct {
	Root     string
	Scripts  string
	Examples string
	Assets   string
}

// DirsFromConfig resolves every directory of cfg.
func DirsFromConfig(cfg *config.Config) Dirs {
	return Dirs{
		Root:     cfg.Dirs.Root,
		Scripts:  cfg.ScriptsDir(),
		Examples: cfg.ExamplesDir(),
		Assets:   cfg.AssetsDir(),
	}
}

// Create makes every directory that does not exist yet.
func (d Dirs) Create() error {
	var errs []error
	for _, dir := range []string{d.Root, d.Scripts, d.Examples, d.Assets} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

// Context is created once at startup and passed by pointer to the host and
// the UI layer.
type Context struct {
	Config  *config.Config
	Dirs    Dirs
	Assets  *assets.Store
	Console *console.Console
	Logger  *slog.Logger
	Theme   theme.Theme
}

// New builds a context from cfg. Log output goes to handler and is captured
// by the console.
func New(cfg *config.Config, handler slog.Handler) *Context {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	logger := slog.New(handler)
	dirs := DirsFromConfig(cfg)

	return &Context{
		Config:  cfg,
		Dirs:    dirs,
		Assets:  assets.New(dirs.Assets, assets.WithLogger(logger.With("component", "assets"))),
		Console: console.New(handler),
		Logger:  logger,
		Theme:   cfg.Theme(),
	}
}

// Sources maps engine.load_order onto the resolved directories.
func (c *Context) Sources() []engine.Source {
	sources := make([]engine.Source, 0, len(c.Config.Engine.LoadOrder))
	for _, name := range c.Config.Engine.LoadOrder {
		switch name {
		case config.SourceExamples:
			sources = append(sources, engine.Source{Name: name, Path: c.Dirs.Examples, IsExample: true})
		case config.SourceScripts:
			sources = append(sources, engine.Source{Name: name, Path: c.Dirs.Scripts})
		}
	}
	return sources
}

// NewHost builds the Starlark host with the capability surface bound to
// backend and to the context's asset cache.
func (c *Context) NewHost(backend capability.Backend) *starlark.Host {
	surface := capability.New(backend, c.Assets,
		capability.WithLogger(c.Logger.With("component", "capability")),
	)
	return starlark.New(surface,
		starlark.WithLogger(c.Logger.With("component", "host")),
		starlark.WithSink(c.Console),
		starlark.WithExtension(c.Config.Engine.Extension),
		starlark.WithMaxSteps(uint64(c.Config.Engine.MaxSteps)),
	)
}

// CycleTheme advances to the next theme and notes the change on the console.
func (c *Context) CycleTheme() theme.Theme {
	c.Theme = c.Theme.Next()
	c.Console.Note("Theme: " + c.Theme.String())
	return c.Theme
}
