package transfer

import (
	"context"
	"time"
)

// Output represents the observable outcome of a run once it reached a
// terminal state
type Output[T any] struct {
	RunID     string        `json:"runId"`
	State     string        `json:"state"`
	Output    []T           `json:"output,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Timeout   bool          `json:"timeout,omitempty"`
	TimeTaken time.Duration `json:"timeTaken"`
}

// Wait blocks until the run reaches a terminal state or the timeout expires
type Wait[T any] func(ctx context.Context, timeout time.Duration) (*Output[T], error)

// Outcome flattens the run into its observable output view.  The Timeout
// flag is owned by wait helpers and left unset here.
func (r *Run[T]) Outcome() *Output[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &Output[T]{
		RunID:   r.ID,
		State:   r.State,
		Output:  append([]T(nil), r.Output...),
		Success: r.Success,
		Error:   r.Error,
	}
	if r.FinishedAt != nil {
		out.TimeTaken = r.FinishedAt.Sub(r.CreatedAt)
	}
	return out
}
