package transfer

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/viant/conveyor/internal/clock"
)

// Run state constants
const (
	StateIdle     = "idle"
	StateRunning  = "running"
	StateDraining = "draining"
	StateComplete = "complete"
	StateFailed   = "failed"
)

// Transition event names
const (
	eventBegin    = "begin"
	eventDrain    = "drain"
	eventComplete = "complete"
	eventFail     = "fail"
)

// TransitionHook observes committed state changes
type TransitionHook func(from, to string)

// Run represents a single transfer instance: one source sequence pushed
// through one bounded channel by exactly one producer/consumer pair.  Its
// lifecycle walks idle, running, draining and ends in complete or failed.
type Run[T any] struct {
	ID         string     `json:"id"`
	Scenario   string     `json:"scenario,omitempty"`
	Source     []T        `json:"source"`
	Expected   int        `json:"expected"`
	Capacity   int        `json:"capacity"`
	Output     []T        `json:"output,omitempty"`
	Success    bool       `json:"success"`
	State      string     `json:"state"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`

	// Counters filled at terminal time from channel introspection
	Produced     int `json:"produced"`
	Consumed     int `json:"consumed"`
	Acknowledged int `json:"acknowledged"`
	HighWater    int `json:"highWater"`

	mu      sync.RWMutex
	machine *fsm.FSM
	onState TransitionHook
}

// Option customizes a new run
type Option[T any] func(*Run[T])

// WithScenario tags the run with the scenario name it originates from
func WithScenario[T any](name string) Option[T] {
	return func(r *Run[T]) {
		r.Scenario = name
	}
}

// WithTransitionHook registers a callback invoked after every committed state
// change, e.g. to journal transitions
func WithTransitionHook[T any](hook TransitionHook) Option[T] {
	return func(r *Run[T]) {
		r.onState = hook
	}
}

// NewRun creates a run in the idle state.  The source sequence is copied so
// later caller mutations cannot leak into the run.
func NewRun[T any](id string, source []T, capacity int, options ...Option[T]) *Run[T] {
	now := clock.Now()
	r := &Run[T]{
		ID:        id,
		Source:    append([]T(nil), source...),
		Expected:  len(source),
		Capacity:  capacity,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, option := range options {
		option(r)
	}
	r.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{StateIdle}, Dst: StateRunning},
			{Name: eventDrain, Src: []string{StateRunning}, Dst: StateDraining},
			{Name: eventComplete, Src: []string{StateDraining}, Dst: StateComplete},
			{Name: eventFail, Src: []string{StateIdle, StateRunning, StateDraining}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				r.mu.Lock()
				r.State = e.Dst
				r.UpdatedAt = clock.Now()
				if e.Dst == StateComplete || e.Dst == StateFailed {
					finished := r.UpdatedAt
					r.FinishedAt = &finished
				}
				hook := r.onState
				r.mu.Unlock()
				if hook != nil {
					hook(e.Src, e.Dst)
				}
			},
		},
	)
	return r
}

// Begin moves the run from idle to running
func (r *Run[T]) Begin(ctx context.Context) error {
	return r.machine.Event(ctx, eventBegin)
}

// Drain moves the run from running to draining once both units returned from
// their driving loops
func (r *Run[T]) Drain(ctx context.Context) error {
	return r.machine.Event(ctx, eventDrain)
}

// Complete records the output sequence and the success predicate, then moves
// the run to its terminal complete state
func (r *Run[T]) Complete(ctx context.Context, output []T, success bool) error {
	r.mu.Lock()
	r.Output = append([]T(nil), output...)
	r.Success = success
	r.mu.Unlock()
	return r.machine.Event(ctx, eventComplete)
}

// Fail records the fatal cause and moves the run to its terminal failed
// state; a failed run never reports success
func (r *Run[T]) Fail(ctx context.Context, cause error) error {
	r.mu.Lock()
	if cause != nil {
		r.Error = cause.Error()
	}
	r.Success = false
	r.mu.Unlock()
	return r.machine.Event(ctx, eventFail)
}

// GetState returns the current lifecycle state
func (r *Run[T]) GetState() string {
	return r.machine.Current()
}

// IsTerminal reports whether the run reached complete or failed
func (r *Run[T]) IsTerminal() bool {
	current := r.machine.Current()
	return current == StateComplete || current == StateFailed
}

// GetOutput returns a copy of the output sequence; meaningful only once the
// run is terminal
func (r *Run[T]) GetOutput() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T(nil), r.Output...)
}

// GetError returns the recorded fatal cause, empty for healthy runs
func (r *Run[T]) GetError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Error
}

// Succeeded reports the success predicate: the run completed and the output
// sequence equals the source element-wise
func (r *Run[T]) Succeeded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State == StateComplete && r.Success
}

// SetCounters records terminal channel statistics on the run
func (r *Run[T]) SetCounters(produced, consumed, acknowledged, highWater int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Produced = produced
	r.Consumed = consumed
	r.Acknowledged = acknowledged
	r.HighWater = highWater
}

// Elapsed returns the wall time between creation and finish, falling back to
// now while the run is still in flight
func (r *Run[T]) Elapsed() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FinishedAt != nil {
		return r.FinishedAt.Sub(r.CreatedAt)
	}
	return clock.Now().Sub(r.CreatedAt)
}
