package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadFailed is returned by a load pass that appended to the ledger.
	ErrLoadFailed = errors.New("failed to load scripts")

	// Discovery and compilation errors, recorded in the ledger.
	ErrReadDir = errors.New("failed to read directory")
	ErrRead    = errors.New("failed to read script")
	ErrCompile = errors.New("failed to compile script")
	ErrInit    = errors.New("failed to init script")

	// Invocation errors, returned from Call.
	ErrIndexOutOfRange    = errors.New("script index out of range")
	ErrEntryPointNotFound = errors.New("entry point not found")
	ErrNotCallable        = errors.New("entry point is not callable")
	ErrPanic              = errors.New("script panicked")
)

// InvocationError describes a failed call into a script entry point.
type InvocationError struct {
	Index int
	Path  string
	Entry string
	Err   error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("script #%d -> %s(): %v", e.Index, e.Entry, e.Err)
	}
	return fmt.Sprintf("%s -> %s(): %v", e.Path, e.Entry, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Err
}
