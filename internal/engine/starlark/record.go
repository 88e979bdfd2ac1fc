package starlark

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/atlanticdynamic/kgames/internal/engine"
	starlarkLib "go.starlark.net/starlark"
)

var _ engine.Script = (*Record)(nil)

// Record is one live script: its compiled unit, the private scope it was
// initialized with, and the globals its top-level code produced.
type Record struct {
	path      string
	source    string
	isExample bool
	modTime   time.Time

	unit    *unit
	scope   starlarkLib.StringDict
	globals starlarkLib.StringDict
}

// Path returns the on-disk identity of the script.
func (r *Record) Path() string {
	return r.path
}

// Name returns the file name without its extension.
func (r *Record) Name() string {
	base := filepath.Base(r.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Source returns the directory the script was discovered in.
func (r *Record) Source() string {
	return r.source
}

// IsExample reports whether the script came from the bundled examples source.
func (r *Record) IsExample() bool {
	return r.isExample
}

// ModTime returns the modification time of the last successful compile.
func (r *Record) ModTime() time.Time {
	return r.modTime
}

// Digest returns the BLAKE3 hex digest of the compiled source.
func (r *Record) Digest() string {
	return r.unit.digest
}

// Constants returns the sorted names of the UPPER_SNAKE_CASE literals.
func (r *Record) Constants() []string {
	return slices.Clone(r.unit.constants)
}

// Variables returns the sorted names of the other top-level literals.
func (r *Record) Variables() []string {
	return slices.Clone(r.unit.variables)
}

// Functions returns the sorted names of the callable globals.
func (r *Record) Functions() []string {
	var names []string
	for name, v := range r.globals {
		if _, ok := v.(starlarkLib.Callable); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Lookup returns a binding visible to the script, preferring its globals over
// the populated scope.
func (r *Record) Lookup(name string) (starlarkLib.Value, bool) {
	if v, ok := r.globals[name]; ok && v != nil {
		return v, true
	}
	v, ok := r.scope[name]
	return v, ok
}

// Globals returns a copy of the script's global bindings.
func (r *Record) Globals() starlarkLib.StringDict {
	return maps.Clone(r.globals)
}
