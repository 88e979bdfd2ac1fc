package watcher

import (
	"context"

	"github.com/atlanticdynamic/kgames/internal/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

var _ supervisor.Stateable = (*Runner)(nil)

// GetState returns the lifecycle state of the watcher.
func (r *Runner) GetState() string {
	return r.fsm.GetState()
}

// GetStateChan streams lifecycle state changes until ctx is done.
func (r *Runner) GetStateChan(ctx context.Context) <-chan string {
	return r.fsm.GetStateChan(ctx)
}

// IsRunning reports whether the watcher is in the Running state.
func (r *Runner) IsRunning() bool {
	return r.GetState() == finitestate.StatusRunning
}
