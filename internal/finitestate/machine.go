// Package finitestate wraps go-fsm with the lifecycle shared by the kgames
// runnables (watcher and frame runner).
package finitestate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew       = fsm.StatusNew
	StatusBooting   = fsm.StatusBooting
	StatusRunning   = fsm.StatusRunning
	StatusReloading = fsm.StatusReloading
	StatusStopping  = fsm.StatusStopping
	StatusStopped   = fsm.StatusStopped
	StatusError     = fsm.StatusError
	StatusUnknown   = fsm.StatusUnknown
)

// TypicalTransitions is a set of standard transitions for a finite state machine.
var TypicalTransitions = fsm.TypicalTransitions

// SubscriberOption is a functional option for configuring state channel behavior
type SubscriberOption = fsm.SubscriberOption

// WithSyncTimeout sets a timeout for synchronous broadcast operations
var WithSyncTimeout = fsm.WithSyncTimeout

// Machine tracks the lifecycle state of one runnable.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState transitions only when the machine is in currentState.
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state whenever it changes.
	// The channel is closed when the provided context is canceled.
	GetStateChan(ctx context.Context) <-chan string

	// GetStateChanWithOptions returns a channel with custom configuration options.
	GetStateChanWithOptions(ctx context.Context, opts ...SubscriberOption) <-chan string
}

// RunnerFSM embeds fsm.Machine and overrides GetStateChan for sync broadcast
type RunnerFSM struct {
	*fsm.Machine
}

// GetStateChan returns a sync broadcast channel so the final stopped state
// reaches subscribers during shutdown.
func (m *RunnerFSM) GetStateChan(ctx context.Context) <-chan string {
	return m.GetStateChanWithOptions(ctx, WithSyncTimeout(2*time.Second))
}

// New creates a machine in StatusNew using the typical transitions.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StatusNew, TypicalTransitions)
	if err != nil {
		return nil, err
	}
	return &RunnerFSM{Machine: machine}, nil
}

// Boot moves a new or stopped machine to StatusBooting.
func Boot(m Machine) error {
	if err := m.Transition(StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}
	return nil
}

// Fail moves the machine to StatusError, logging when that is not possible.
func Fail(m Machine, logger *slog.Logger) {
	if err := m.Transition(StatusError); err != nil {
		logger.Error("Failed to transition to error state", "error", err)
	}
}

// Shutdown walks the machine through StatusStopping to StatusStopped.
func Shutdown(m Machine, logger *slog.Logger) error {
	if m.GetState() != StatusStopping {
		if err := m.Transition(StatusStopping); err != nil {
			logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	if err := m.Transition(StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}
	return nil
}
