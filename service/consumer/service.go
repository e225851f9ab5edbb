package consumer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/service/channel"
	"github.com/viant/conveyor/service/journal"
	"github.com/viant/conveyor/tracing"
)

// Config defines consumer settings
type Config struct {
	// Throttle pauses between consecutive takes; zero disables pacing
	Throttle time.Duration
}

// Service drains exactly the expected number of items from the bounded
// channel into its output sequence, acknowledging each one
type Service[T any] struct {
	config   Config
	channel  channel.Channel[T]
	expected int
	output   []T
	journal  *journal.Journal
}

// Option configures the consumer
type Option[T any] func(*Service[T])

// WithConfig sets the configuration for the service
func WithConfig[T any](config Config) Option[T] {
	return func(s *Service[T]) {
		s.config = config
	}
}

// WithThrottle sets the pause between consecutive takes
func WithThrottle[T any](throttle time.Duration) Option[T] {
	return func(s *Service[T]) {
		s.config.Throttle = throttle
	}
}

// WithJournal sets the progress journal
func WithJournal[T any](aJournal *journal.Journal) Option[T] {
	return func(s *Service[T]) {
		s.journal = aJournal
	}
}

// New creates a consumer draining expected items from the supplied channel
func New[T any](aChannel channel.Channel[T], expected int, options ...Option[T]) (*Service[T], error) {
	if aChannel == nil {
		return nil, fmt.Errorf("channel is required")
	}
	if expected < 0 {
		return nil, fmt.Errorf("%w: %d", channel.ErrNegativeExpectation, expected)
	}
	s := &Service[T]{
		channel:  aChannel,
		expected: expected,
		output:   make([]T, 0, expected),
		journal:  journal.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Run repeats take, append to output, acknowledge - exactly expected times.
// The consumer never takes more than expected items and acknowledges every
// taken item before taking the next, so the acknowledgment count can never
// exceed the take count.
func (s *Service[T]) Run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "conveyor.consume", tracing.KindConsumer)
	span.WithAttributes(map[string]string{"expected": strconv.Itoa(s.expected)})
	defer func() {
		tracing.EndSpan(span, err)
	}()
	for i := 0; i < s.expected; i++ {
		var item T
		if item, err = s.channel.Take(ctx); err != nil {
			return fmt.Errorf("failed to take item %d: %w", i, err)
		}
		s.output = append(s.output, item)
		depth := s.channel.Len()
		s.journal.Take(i, item, depth)
		if err = s.channel.Acknowledge(); err != nil {
			return fmt.Errorf("failed to acknowledge item %d: %w", i, err)
		}
		s.journal.Ack(i)
		progress.UpdateCtx(ctx, progress.Delta{Consumed: 1, Acknowledged: 1, Depth: depth})
		if s.config.Throttle > 0 {
			if err = pause(ctx, s.config.Throttle); err != nil {
				return err
			}
		}
	}
	return nil
}

// Output returns a copy of the accumulated output sequence.  The sequence is
// owned exclusively by the consumer while Run is in flight; read it only
// after Run returned.
func (s *Service[T]) Output() []T {
	return append([]T(nil), s.output...)
}

// pause sleeps for the supplied duration unless the context finishes first
func pause(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
