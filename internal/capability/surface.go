// Package capability defines the fixed set of host functions, value types and
// constants exposed to scripts.
//
// The surface is built once, before any script runs, and the same frozen
// builtins are handed to every script. Constants are the exception: they are
// allocated per scope by Constants so no script can observe another's values.
package capability

import (
	"log/slog"
	"maps"
	"slices"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

const (
	namespaceJSON = "json"
	namespaceMath = "math"
	namespaceTime = "time"
)

// Surface is the closed mapping of names to host capabilities.
type Surface struct {
	backend  Backend
	textures TextureStore
	builtins starlarkLib.StringDict
	logger   *slog.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used by the surface.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surface) {
		s.logger = logger
	}
}

// New registers every host function against the backend and texture store.
func New(backend Backend, textures TextureStore, opts ...Option) *Surface {
	s := &Surface{
		backend:  backend,
		textures: textures,
		logger:   slog.Default().WithGroup("capability.Surface"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.builtins = s.register()
	s.builtins.Freeze()
	s.logger.Debug("Capability surface registered", "functions", len(s.builtins))
	return s
}

// Predeclared returns the names every script is compiled and executed
// against: the Starlark universe, the standard modules and the host
// functions. The returned dict is a fresh copy; its values are shared.
func (s *Surface) Predeclared() starlarkLib.StringDict {
	dict := maps.Clone(starlarkLib.Universe)
	dict[namespaceJSON] = starlarkJSON.Module
	dict[namespaceMath] = starlarkMath.Module
	dict[namespaceTime] = starlarkTime.Module
	maps.Copy(dict, s.builtins)
	return dict
}

// Has reports whether name is a host function or standard module.
func (s *Surface) Has(name string) bool {
	switch name {
	case namespaceJSON, namespaceMath, namespaceTime:
		return true
	}
	_, ok := s.builtins[name]
	return ok
}

// Functions returns the sorted names of the host functions.
func (s *Surface) Functions() []string {
	return slices.Sorted(maps.Keys(s.builtins))
}
