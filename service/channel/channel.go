package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidCapacity indicates a channel was requested with capacity below one
	ErrInvalidCapacity = errors.New("channel: capacity must be at least 1")

	// ErrNegativeExpectation indicates a drain barrier with a negative target
	ErrNegativeExpectation = errors.New("channel: expected count cannot be negative")

	// ErrAcknowledgeOverflow indicates more acknowledgments than taken items
	ErrAcknowledgeOverflow = errors.New("channel: acknowledge exceeds taken count")
)

// Channel represents a bounded FIFO handoff for any item type
type Channel[T any] interface {
	// Put appends an item, blocking while the buffer is full
	Put(ctx context.Context, item T) error

	// Take removes and returns the oldest item, blocking while the buffer is empty
	Take(ctx context.Context) (T, error)

	// Acknowledge records that one previously taken item has been fully processed
	Acknowledge() error

	// AwaitDrain blocks until expected acknowledgments have been recorded
	AwaitDrain(ctx context.Context, expected int) error

	// Len returns the number of buffered items
	Len() int

	// Cap returns the channel capacity
	Cap() int
}

// Bounded is the in-memory monitor implementation of Channel.  A single mutex
// guards the ring buffer; separate condition signals wake writers when the
// buffer stops being full, readers when it stops being empty, and drain
// waiters when an acknowledgment is recorded.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	drained  *sync.Cond

	buffer   []T
	capacity int
	head     int
	tail     int
	size     int

	taken     int
	acked     int
	highWater int
	fault     error
}

// New creates a bounded channel with the supplied capacity
func New[T any](capacity int) (*Bounded[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	b := &Bounded[T]{
		buffer:   make([]T, capacity),
		capacity: capacity,
	}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	b.drained = sync.NewCond(&b.mu)
	return b, nil
}

// Put appends item to the buffer, suspending the caller while the buffer holds
// capacity items.  Items are never dropped or reordered.
func (b *Bounded[T]) Put(ctx context.Context, item T) error {
	stop := b.wakeOnDone(ctx)
	defer stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	for b.size == b.capacity {
		if err := b.runnable(ctx); err != nil {
			return err
		}
		b.notFull.Wait()
	}
	if err := b.runnable(ctx); err != nil {
		return err
	}
	b.buffer[b.tail] = item
	b.tail = (b.tail + 1) % b.capacity
	b.size++
	if b.size > b.highWater {
		b.highWater = b.size
	}
	b.notEmpty.Signal()
	return nil
}

// Take removes and returns the oldest buffered item, suspending the caller
// while the buffer is empty.  Items come out in the exact order they went in.
func (b *Bounded[T]) Take(ctx context.Context) (T, error) {
	var zero T
	stop := b.wakeOnDone(ctx)
	defer stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	for b.size == 0 {
		if err := b.runnable(ctx); err != nil {
			return zero, err
		}
		b.notEmpty.Wait()
	}
	if err := b.runnable(ctx); err != nil {
		return zero, err
	}
	item := b.buffer[b.head]
	b.buffer[b.head] = zero
	b.head = (b.head + 1) % b.capacity
	b.size--
	b.taken++
	b.notFull.Signal()
	return item, nil
}

// Acknowledge records one fully processed item.  The count feeds the drain
// barrier only and never touches buffer accounting.  Acknowledging more items
// than were taken is a fatal fault that wakes and fails every waiter.
func (b *Bounded[T]) Acknowledge() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault != nil {
		return b.fault
	}
	if b.acked >= b.taken {
		b.fault = ErrAcknowledgeOverflow
		b.broadcast()
		return b.fault
	}
	b.acked++
	b.drained.Broadcast()
	return nil
}

// AwaitDrain blocks until expected acknowledgments have been recorded.  It is
// the completion barrier confirming the consumer has finished processing every
// item, not merely removed it from the buffer.
func (b *Bounded[T]) AwaitDrain(ctx context.Context, expected int) error {
	if expected < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeExpectation, expected)
	}
	stop := b.wakeOnDone(ctx)
	defer stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	for b.acked < expected {
		if err := b.runnable(ctx); err != nil {
			return err
		}
		b.drained.Wait()
	}
	return nil
}

// Len returns the number of currently buffered items
func (b *Bounded[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Cap returns the configured capacity
func (b *Bounded[T]) Cap() int {
	return b.capacity
}

// Taken returns how many items have been removed so far
func (b *Bounded[T]) Taken() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.taken
}

// Acknowledged returns how many acknowledgments have been recorded so far
func (b *Bounded[T]) Acknowledged() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.acked
}

// HighWater returns the largest buffered count observed over the channel
// lifetime; it never exceeds Cap.
func (b *Bounded[T]) HighWater() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.highWater
}

// runnable reports the first condition terminating a wait: a sticky fault or a
// finished context.  Callers hold b.mu.
func (b *Bounded[T]) runnable(ctx context.Context) error {
	if b.fault != nil {
		return b.fault
	}
	return ctx.Err()
}

// wakeOnDone arranges for context completion to wake every waiter so blocked
// calls observe ctx.Err promptly instead of sleeping until the next signal
func (b *Bounded[T]) wakeOnDone(ctx context.Context) func() bool {
	return context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.broadcast()
	})
}

// broadcast wakes every waiter class.  Callers hold b.mu.
func (b *Bounded[T]) broadcast() {
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
	b.drained.Broadcast()
}

// ensure Bounded implements the Channel interface
var _ Channel[any] = (*Bounded[any])(nil)
