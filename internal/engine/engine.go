// Package engine defines the contract between the application and a script
// host: the sources a host loads from, the console sink it reports to, the
// error ledger a load pass fills, and the operations every host implements.
package engine

import (
	"fmt"
	"time"
)

// Source is one logical script location, resolved to a directory on disk.
type Source struct {
	// Name is the logical name of the source, such as "scripts" or "examples".
	Name string
	// Path is the directory scripts are discovered in.
	Path string
	// IsExample marks every script discovered here as a bundled example.
	IsExample bool
}

// String returns a human readable representation of the source.
func (s Source) String() string {
	return fmt.Sprintf("%s(%s)", s.Name, s.Path)
}

// Sink receives progress and failure messages from a host. The concrete
// presentation (on-screen overlay, stdout) belongs to the caller.
type Sink interface {
	Log(text string)
	Warn(text string)
	Err(text string)
}

// Script is the read-only view of one loaded script.
type Script interface {
	Path() string
	Name() string
	IsExample() bool
	ModTime() time.Time
}

// Engine is implemented by every script host. Exactly one implementation is
// compiled into the application.
type Engine interface {
	// Extension returns the file extension scripts must carry, including the dot.
	Extension() string

	// Load runs one load pass over sources, in order. Failures are appended to
	// ledger and never abort the pass.
	Load(sources []Source, ledger *Ledger) error

	// Reload repeats Load over the sources of the most recent Load.
	Reload(ledger *Ledger) error

	// Call invokes the zero-argument function name inside the script at index.
	Call(index int, name string) error

	// Reset discards the runtime state of the script at index and runs its
	// initialization again.
	Reset(index int) error

	// Len returns the number of live scripts.
	Len() int

	// Scripts returns the live scripts in load order.
	Scripts() []Script

	// IndexOf returns the index of the script loaded from path, or -1.
	IndexOf(path string) int
}
