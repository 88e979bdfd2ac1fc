package engine

import (
	"errors"
	"fmt"
)

// Failure is one ledger entry: the path that failed and why.
type Failure struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Unwrap returns the underlying cause.
func (f Failure) Unwrap() error {
	return f.Err
}

// Ledger accumulates the failures of one load pass. It is owned by the caller,
// which clears it before starting a new pass.
type Ledger struct {
	entries []Failure
}

// Append records a failure for path.
func (l *Ledger) Append(path string, err error) {
	l.entries = append(l.entries, Failure{Path: path, Err: err})
}

// Len returns the number of recorded failures.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns a copy of the recorded failures in append order.
func (l *Ledger) Entries() []Failure {
	if l == nil {
		return nil
	}
	out := make([]Failure, len(l.entries))
	copy(out, l.entries)
	return out
}

// Paths returns the failing paths in append order.
func (l *Ledger) Paths() []string {
	if l == nil {
		return nil
	}
	paths := make([]string, 0, len(l.entries))
	for _, f := range l.entries {
		paths = append(paths, f.Path)
	}
	return paths
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	if l == nil {
		return
	}
	l.entries = l.entries[:0]
}

// Err joins all failures into one error, or returns nil when empty.
func (l *Ledger) Err() error {
	if l.Len() == 0 {
		return nil
	}
	errs := make([]error, 0, len(l.entries))
	for _, f := range l.entries {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
