package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/conveyor/internal/idgen"
	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/channel"
	"github.com/viant/conveyor/service/consumer"
	"github.com/viant/conveyor/service/dao"
	"github.com/viant/conveyor/service/journal"
	"github.com/viant/conveyor/service/producer"
)

// DefaultCapacity bounds the channel when a run does not set one
const DefaultCapacity = 3

// Config defines coordinator settings
type Config struct {
	// Capacity bounds the transfer channel; zero selects DefaultCapacity
	Capacity int

	// ProducerThrottle paces puts; zero disables pacing
	ProducerThrottle time.Duration

	// ConsumerThrottle paces takes; zero disables pacing
	ConsumerThrottle time.Duration
}

// Init applies defaults
func (c *Config) Init() {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
}

// Service owns the full lifecycle of transfer runs: it builds the channel,
// launches exactly one producer and one consumer concurrently, waits for both,
// enforces the acknowledgment barrier and verifies the outcome.  A service is
// reusable; every Run call creates an isolated run.
type Service[T comparable] struct {
	config   Config
	scenario string
	journal  *journal.Journal
	reports  dao.Service[string, transfer.Report]
	onChange func(progress.Progress)
}

// Option configures the coordinator
type Option[T comparable] func(*Service[T])

// WithConfig sets the configuration for the service
func WithConfig[T comparable](config Config) Option[T] {
	return func(s *Service[T]) {
		s.config = config
	}
}

// WithCapacity bounds the transfer channel
func WithCapacity[T comparable](capacity int) Option[T] {
	return func(s *Service[T]) {
		s.config.Capacity = capacity
	}
}

// WithProducerThrottle paces puts
func WithProducerThrottle[T comparable](throttle time.Duration) Option[T] {
	return func(s *Service[T]) {
		s.config.ProducerThrottle = throttle
	}
}

// WithConsumerThrottle paces takes
func WithConsumerThrottle[T comparable](throttle time.Duration) Option[T] {
	return func(s *Service[T]) {
		s.config.ConsumerThrottle = throttle
	}
}

// WithScenario tags runs with the scenario name they originate from
func WithScenario[T comparable](name string) Option[T] {
	return func(s *Service[T]) {
		s.scenario = name
	}
}

// WithJournal sets the progress journal; the coordinator owns journaling and
// hands derived unit journals to the producer and the consumer
func WithJournal[T comparable](aJournal *journal.Journal) Option[T] {
	return func(s *Service[T]) {
		s.journal = aJournal
	}
}

// WithReportDAO persists a report for every terminal run
func WithReportDAO[T comparable](reports dao.Service[string, transfer.Report]) Option[T] {
	return func(s *Service[T]) {
		s.reports = reports
	}
}

// WithProgressHook observes counter changes while a run is in flight
func WithProgressHook[T comparable](onChange func(progress.Progress)) Option[T] {
	return func(s *Service[T]) {
		s.onChange = onChange
	}
}

// New creates a coordinator service instance
func New[T comparable](options ...Option[T]) (*Service[T], error) {
	s := &Service[T]{
		journal: journal.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	if s.config.Capacity < 0 {
		return nil, fmt.Errorf("%w: %d", channel.ErrInvalidCapacity, s.config.Capacity)
	}
	s.config.Init()
	return s, nil
}

// Run moves the source sequence through a fresh bounded channel and returns
// the terminal run.  The producer and the consumer execute on their own
// goroutines; Run itself blocks until the run is terminal.  When either unit
// fails, the peer is cancelled, the run transitions to failed and the root
// cause is returned alongside the run.
func (s *Service[T]) Run(ctx context.Context, source []T) (*transfer.Run[T], error) {
	run, jrnl := s.newRun(source)
	return run, s.drive(ctx, run, jrnl, source)
}

// Start launches the run asynchronously and returns it right away together
// with a wait function.  Failures land on the run entity; the wait function
// polls until the run is terminal or the timeout expires.
func (s *Service[T]) Start(ctx context.Context, source []T) (*transfer.Run[T], transfer.Wait[T], error) {
	run, jrnl := s.newRun(source)
	go func() {
		// the outcome is recorded on the run entity
		_ = s.drive(ctx, run, jrnl, source)
	}()
	return run, waitFor(run), nil
}

// newRun mints the run identity and its journal
func (s *Service[T]) newRun(source []T) (*transfer.Run[T], *journal.Journal) {
	runID := idgen.New()
	jrnl := s.journal.WithRun(runID, s.scenario)
	run := transfer.NewRun[T](runID, source, s.config.Capacity,
		transfer.WithScenario[T](s.scenario),
		transfer.WithTransitionHook[T](jrnl.Transition),
	)
	return run, jrnl
}

// drive executes the run lifecycle to its terminal state
func (s *Service[T]) drive(ctx context.Context, run *transfer.Run[T], jrnl *journal.Journal, source []T) error {
	defer s.persist(ctx, run)

	aChannel, err := channel.New[T](s.config.Capacity)
	if err != nil {
		jrnl.Failed(err)
		_ = run.Fail(ctx, err)
		return err
	}
	expected := run.Expected
	jrnl.Started(expected, s.config.Capacity)

	ctx, tracker := progress.WithNewTracker(ctx, run.ID, s.scenario, s.onChange)
	if err := run.Begin(ctx); err != nil {
		return err
	}

	var output []T
	if expected > 0 {
		output, err = s.transfer(ctx, aChannel, run, jrnl, source, expected)
		if err != nil {
			jrnl.Failed(err)
			_ = run.Fail(ctx, err)
			s.counters(run, aChannel, tracker)
			return err
		}
	} else {
		// nothing to move; the drain barrier is already satisfied
		if err := run.Drain(ctx); err != nil {
			return err
		}
	}

	success := Verify(source, output)
	if !success {
		jrnl.Mismatch(Diff(source, output))
	}
	s.counters(run, aChannel, tracker)
	if err := run.Complete(ctx, output, success); err != nil {
		return err
	}
	jrnl.Finished(success, run.Produced, run.Consumed, run.Acknowledged, run.Elapsed())
	return nil
}

// transfer launches the unit pair, waits for both and enforces the
// acknowledgment barrier before handing back the drained output.
func (s *Service[T]) transfer(ctx context.Context, aChannel *channel.Bounded[T], run *transfer.Run[T], jrnl *journal.Journal, source []T, expected int) ([]T, error) {
	unitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	prod, err := producer.New[T](aChannel, source,
		producer.WithThrottle[T](s.config.ProducerThrottle),
		producer.WithJournal[T](jrnl.WithUnit(journal.UnitProducer)),
	)
	if err != nil {
		return nil, err
	}
	cons, err := consumer.New[T](aChannel, expected,
		consumer.WithThrottle[T](s.config.ConsumerThrottle),
		consumer.WithJournal[T](jrnl.WithUnit(journal.UnitConsumer)),
	)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var prodErr, consErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := prod.Run(unitCtx); err != nil {
			prodErr = err
			cancel() // wake the peer blocked on the channel
		}
	}()
	go func() {
		defer wg.Done()
		if err := cons.Run(unitCtx); err != nil {
			consErr = err
			cancel()
		}
	}()
	wg.Wait()

	if err := firstError(prodErr, consErr); err != nil {
		return nil, err
	}

	// both loops returned cleanly; wait for every acknowledgment
	if err := run.Drain(ctx); err != nil {
		return nil, err
	}
	if err := aChannel.AwaitDrain(ctx, expected); err != nil {
		return nil, err
	}
	return cons.Output(), nil
}

// counters records terminal statistics on the run: item counts from the
// progress tracker, the buffered high-water mark from the channel itself.
func (s *Service[T]) counters(run *transfer.Run[T], aChannel *channel.Bounded[T], tracker *progress.Progress) {
	snapshot := tracker.Snapshot()
	run.SetCounters(snapshot.ProducedItems, snapshot.ConsumedItems, snapshot.AcknowledgedItems, aChannel.HighWater())
}

// persist saves the terminal report when a report DAO is configured.  The
// parent context may already be cancelled on failure paths, so persistence
// runs detached from it.
func (s *Service[T]) persist(ctx context.Context, run *transfer.Run[T]) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Save(context.WithoutCancel(ctx), run.Report()); err != nil {
		s.journal.Failed(fmt.Errorf("failed to persist report %s: %w", run.ID, err))
	}
}

// pollFrequency is how often wait functions re-check a run for terminality
const pollFrequency = 20 * time.Millisecond

// waitFor builds a wait function polling the run until it is terminal or the
// timeout expires; expiry is reported on the output, not as an error.
func waitFor[T comparable](run *transfer.Run[T]) transfer.Wait[T] {
	return func(ctx context.Context, timeout time.Duration) (*transfer.Output[T], error) {
		deadline := time.Now().Add(timeout)
		for !run.IsTerminal() {
			if time.Now().After(deadline) {
				out := run.Outcome()
				out.Timeout = true
				return out, nil
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pollFrequency):
			}
		}
		return run.Outcome(), nil
	}
}

// firstError picks the root cause among unit errors, preferring faults over
// the cancellation noise produced when one unit aborts its peer.
func firstError(errs ...error) error {
	var fallback error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			return err
		}
		if fallback == nil {
			fallback = err
		}
	}
	return fallback
}
