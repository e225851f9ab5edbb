package producer

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

// Config defines producer settings
type Config struct {
	// Throttle pauses between consecutive puts; zero disables pacing
	Throttle time.Duration
}

// Service drives a finite source sequence into the bounded channel, one item
// at a time, respecting backpressure
type Service[T any] struct {
	config  Config
	channel channel.Channel[T]
	source  []T
	journal *journal.Journal
}

// Option configures the producer
type Option[T any] func(*Service[T])

// WithConfig sets the configuration for the service
func WithConfig[T any](config Config) Option[T] {
	return func(s *Service[T]) {
		s.config = config
	}
}

// WithThrottle sets the pause between consecutive puts
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

// New creates a producer for the supplied channel and source sequence.  The
// source is copied; callers can reuse their backing array.
func New[T any](aChannel channel.Channel[T], source []T, options ...Option[T]) (*Service[T], error) {
	if aChannel == nil {
		return nil, fmt.Errorf("channel is required")
	}
	s := &Service[T]{
		channel: aChannel,
		source:  append([]T(nil), source...),
		journal: journal.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Size returns the number of items the producer will push
func (s *Service[T]) Size() int {
	return len(s.source)
}

// Run pushes every source item into the channel in source order with no
// reordering, no skipping and no duplication.  It returns only after the last
// item was successfully put; the only failure paths are a channel fault and
// context cancellation.
func (s *Service[T]) Run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "conveyor.produce", tracing.KindProducer)
	span.WithAttributes(map[string]string{"items": strconv.Itoa(len(s.source))})
	defer func() {
		tracing.EndSpan(span, err)
	}()
	for i, item := range s.source {
		if err = s.channel.Put(ctx, item); err != nil {
			return fmt.Errorf("failed to put item %d: %w", i, err)
		}
		depth := s.channel.Len()
		s.journal.Put(i, item, depth)
		progress.UpdateCtx(ctx, progress.Delta{Produced: 1, Depth: depth})
		if s.config.Throttle > 0 {
			if err = pause(ctx, s.config.Throttle); err != nil {
				return err
			}
		}
	}
	return nil
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
